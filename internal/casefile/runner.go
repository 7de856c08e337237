package casefile

import (
	"fmt"
	"slices"

	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/prettyprinter"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

// Site is a case turned into syntax: the call, the root of the expression
// it sits in (the pipe when there is one), and that root's source text.
type Site struct {
	Call   *ast.CallExpression
	Root   ast.Expression
	Source string
}

// Build constructs the syntax of c and lays out its spans.
func (c *Case) Build() Site {
	call := ast.CallNamed(c.Function, buildArgs(c.Args)...)
	var root ast.Expression = call
	if c.Pipe != nil {
		root = ast.Infix(c.Pipe.Build(), c.PipeOperator, call)
	}
	return Site{Call: call, Root: root, Source: prettyprinter.Print(root)}
}

// Result is the outcome of running one case.
type Result struct {
	Case       *Case
	Site       Site
	Match      *argmatch.Match
	Mismatches []string
}

// Failed reports whether the result contradicts the case's expectation.
func (r Result) Failed() bool {
	return len(r.Mismatches) > 0
}

// Run matches every case of f with r, checking expectations where given.
func (f *File) Run(r *argmatch.Resolver) []Result {
	results := make([]Result, 0, len(f.Cases))
	for i := range f.Cases {
		c := &f.Cases[i]
		site := c.Build()
		m := r.Match(site.Call, f.Signature(c))
		results = append(results, Result{Case: c, Site: site, Match: m, Mismatches: Check(c.Expect, m)})
	}
	return results
}

// Check compares m with want and describes every difference.
func Check(want *Expect, m *argmatch.Match) []string {
	if want == nil {
		return nil
	}
	var out []string
	if want.Unresolved {
		if m != nil {
			out = append(out, "expected an unresolved callee, got a signature")
		}
		return out
	}
	if m == nil {
		return append(out, "callee is unresolved")
	}
	if want.Slots != nil {
		if got := m.Binding().Slots(); !slices.Equal(got, want.Slots) {
			out = append(out, fmt.Sprintf("slots = %v, want %v", got, want.Slots))
		}
	}
	if want.Valid != nil && m.IsValid() != *want.Valid {
		out = append(out, fmt.Sprintf("valid = %v, want %v", m.IsValid(), *want.Valid))
	}
	if want.Unbound != nil {
		if got := m.UnboundParameters(); !slices.Equal(got, *want.Unbound) {
			out = append(out, fmt.Sprintf("unbound = %v, want %v", got, *want.Unbound))
		}
	}
	if want.Variadic != nil {
		if got := sourceList(m.VariadicArguments()); !slices.Equal(got, *want.Variadic) {
			out = append(out, fmt.Sprintf("variadic = %v, want %v", got, *want.Variadic))
		}
	}
	for _, name := range sortedKeys(want.Bound) {
		got := prettyprinter.Sprint(m.ArgumentForName(name))
		if got != want.Bound[name] {
			out = append(out, fmt.Sprintf("%s = %q, want %q", name, got, want.Bound[name]))
		}
	}
	return out
}

// BuildDeclarations constructs the declaration calls of f.
func (f *File) BuildDeclarations() []*ast.CallExpression {
	out := make([]*ast.CallExpression, 0, len(f.Declarations))
	for _, d := range f.Declarations {
		call, ok := d.Build().(*ast.CallExpression)
		if !ok {
			continue
		}
		prettyprinter.Print(call)
		out = append(out, call)
	}
	return out
}

func sourceList(exprs []ast.Expression) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = prettyprinter.Sprint(e)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
