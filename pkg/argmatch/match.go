package argmatch

import (
	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/binding"
)

// Match is the matching of one call site against one signature.
// A nil *Match is the absent result and answers every query with nothing.
type Match struct {
	call      *ast.CallExpression
	sig       binding.Signature
	binding   *binding.Binding
	args      []*ast.Argument // effective: pipe value first when injected
	pipeValue ast.Expression
}

// Problem is an argument that fills no parameter.
type Problem struct {
	Index    int           // position among the written arguments, -1 for the pipe value
	Argument *ast.Argument // nil for the pipe value
	Kind     binding.ProblemKind
	Name     string
	Message  string
}

// Call returns the matched call site.
func (m *Match) Call() *ast.CallExpression {
	if m == nil {
		return nil
	}
	return m.call
}

// Signature returns the parameter list the call was matched against.
func (m *Match) Signature() binding.Signature {
	if m == nil {
		return binding.Signature{}
	}
	return m.sig
}

// Binding returns the underlying permutation over the effective arguments.
func (m *Match) Binding() *binding.Binding {
	if m == nil {
		return nil
	}
	return m.binding
}

// IsValid reports whether every argument, the pipe value included, fills a
// parameter. The absent Match is not valid.
func (m *Match) IsValid() bool {
	return m != nil && m.binding.Valid()
}

// PipeValue returns the left operand of the enclosing forward pipe, or nil.
func (m *Match) PipeValue() ast.Expression {
	if m == nil {
		return nil
	}
	return m.pipeValue
}

func (m *Match) shift() int {
	if m.binding.Injected() {
		return 1
	}
	return 0
}

// ArgumentFor returns the value bound to parameter index. For the variadic
// slot that is the first captured value; see VariadicArguments for all.
// The pipe value is returned when it is what fills the parameter.
func (m *Match) ArgumentFor(index int) ast.Expression {
	if m == nil || index < 0 || index >= m.sig.Len() {
		return nil
	}
	for i, arg := range m.args {
		if m.binding.Slot(i) == index && arg != nil {
			return arg.Value
		}
	}
	return nil
}

// ArgumentForName is ArgumentFor by parameter name.
func (m *Match) ArgumentForName(name string) ast.Expression {
	if m == nil {
		return nil
	}
	idx := m.sig.Index(name)
	if idx == Unmatched {
		return nil
	}
	return m.ArgumentFor(idx)
}

// ArgumentsFor returns every value bound to parameter index in argument order.
func (m *Match) ArgumentsFor(index int) []ast.Expression {
	if m == nil {
		return nil
	}
	var out []ast.Expression
	for _, i := range m.binding.Arguments(index) {
		if m.args[i] != nil {
			out = append(out, m.args[i].Value)
		}
	}
	return out
}

// ArgumentNodeFor returns the written argument bound to parameter index
// (the first one for the variadic slot). It is nil when the parameter is
// unbound or filled only by the pipe value.
func (m *Match) ArgumentNodeFor(index int) *ast.Argument {
	if m == nil || index < 0 || index >= m.sig.Len() {
		return nil
	}
	for i, arg := range m.args {
		if m.binding.Slot(i) == index && arg != nil && !arg.Injected {
			return arg
		}
	}
	return nil
}

// ParameterFor returns the name of the parameter filled by node. node may be
// an argument, the value of an argument (named or not), or the pipe value.
func (m *Match) ParameterFor(node ast.Node) (string, bool) {
	idx := m.parameterIndexOf(node)
	if idx == Unmatched {
		return "", false
	}
	return m.sig.Name(idx), true
}

// ParameterIndexOf is ParameterFor returning the parameter index.
func (m *Match) ParameterIndexOf(node ast.Node) int {
	return m.parameterIndexOf(node)
}

func (m *Match) parameterIndexOf(node ast.Node) int {
	if m == nil || node == nil {
		return Unmatched
	}
	for i, arg := range m.args {
		if arg == nil {
			continue
		}
		if (!arg.Injected && ast.Node(arg) == node) || (arg.Value != nil && ast.Node(arg.Value) == node) {
			return m.binding.Slot(i)
		}
		if !arg.Injected && arg.Name != nil && ast.Node(arg.Name) == node {
			return m.binding.Slot(i)
		}
	}
	return Unmatched
}

// ParameterIndexFor returns the parameter index filled by argument argIndex.
// argIndex counts written arguments; with withPipe it counts the effective
// sequence instead, where 0 is the pipe value when there is one.
func (m *Match) ParameterIndexFor(argIndex int, withPipe bool) int {
	if m == nil {
		return Unmatched
	}
	if !withPipe {
		if argIndex < 0 {
			return Unmatched
		}
		argIndex += m.shift()
	}
	return m.binding.Slot(argIndex)
}

// PipeParameter returns the parameter the pipe value fills.
func (m *Match) PipeParameter() (string, bool) {
	if m == nil || m.pipeValue == nil {
		return "", false
	}
	idx := m.binding.Slot(0)
	if idx == Unmatched {
		return "", false
	}
	return m.sig.Name(idx), true
}

// VariadicArguments returns every value captured by the variadic slot in
// argument order, the pipe value included when it landed there.
func (m *Match) VariadicArguments() []ast.Expression {
	if m == nil {
		return nil
	}
	idx := m.sig.VariadicIndex()
	if idx == Unmatched {
		return nil
	}
	return m.ArgumentsFor(idx)
}

// VariadicArgumentNodes returns the written arguments captured by the
// variadic slot, so callers can read the names of named extras.
func (m *Match) VariadicArgumentNodes() []*ast.Argument {
	if m == nil {
		return nil
	}
	idx := m.sig.VariadicIndex()
	if idx == Unmatched {
		return nil
	}
	var out []*ast.Argument
	for _, i := range m.binding.Arguments(idx) {
		if arg := m.args[i]; arg != nil && !arg.Injected {
			out = append(out, arg)
		}
	}
	return out
}

// UnboundParameters returns the names of the parameters that received no
// argument, in declaration order.
func (m *Match) UnboundParameters() []string {
	if m == nil {
		return nil
	}
	unbound := m.binding.Unbound()
	out := make([]string, 0, len(unbound))
	for _, idx := range unbound {
		out = append(out, m.sig.Name(idx))
	}
	return out
}

// Problems describes the unmatched arguments in written-argument terms.
func (m *Match) Problems() []Problem {
	if m == nil {
		return nil
	}
	shift := m.shift()
	var out []Problem
	for _, p := range m.binding.Problems() {
		prob := Problem{Index: p.Arg - shift, Kind: p.Kind, Name: p.Name}
		if p.Arg >= shift {
			prob.Argument = m.args[p.Arg]
			p.Arg -= shift
			prob.Message = p.String()
		} else {
			prob.Message = "piped value: unused argument"
		}
		out = append(out, prob)
	}
	return out
}

// ArgumentAt returns the index of the written argument under the caret at
// offset, or -1. Spans must have been laid out.
func (m *Match) ArgumentAt(offset int) int {
	if m == nil {
		return -1
	}
	for i, arg := range m.call.Arguments {
		if arg == nil {
			continue
		}
		sp := arg.Span()
		if sp.End > sp.Start && sp.Contains(offset) {
			return i
		}
	}
	return -1
}

// ActiveParameter returns the parameter the argument under the caret fills,
// for highlighting in a parameter-info popup. It is Unmatched when the caret
// is on no argument or that argument fills nothing.
func (m *Match) ActiveParameter(offset int) int {
	i := m.ArgumentAt(offset)
	if i < 0 {
		return Unmatched
	}
	return m.ParameterIndexFor(i, false)
}
