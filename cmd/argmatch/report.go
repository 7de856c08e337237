package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/funvibe/argmatch/internal/casefile"
	"github.com/funvibe/argmatch/internal/index"
	"github.com/funvibe/argmatch/internal/prettyprinter"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

func (c *cli) printResult(res casefile.Result) {
	var status string
	switch {
	case res.Failed():
		status = c.style.fail.Render("FAIL")
	case res.Case.Expect == nil:
		status = c.style.muted.Render("----")
	default:
		status = c.style.pass.Render("PASS")
	}
	fmt.Fprintf(c.stdout, "%s  %s  %s\n", status, res.Case.Name, c.style.muted.Render(res.Site.Source))
	for _, msg := range res.Mismatches {
		fmt.Fprintf(c.stdout, "      %s\n", msg)
	}
	if res.Case.Expect == nil {
		if res.Match == nil {
			fmt.Fprintf(c.stdout, "      %s\n", c.style.muted.Render("callee has no known parameters"))
		}
		for _, p := range res.Match.Problems() {
			fmt.Fprintf(c.stdout, "      %s %s\n", c.style.warn.Render("problem:"), p.Message)
		}
	}
}

func (c *cli) printExplanation(res casefile.Result, at int) {
	m := res.Match
	fmt.Fprintln(c.stdout, c.style.header.Render(res.Case.Name))
	fmt.Fprintf(c.stdout, "  %s\n", res.Site.Source)
	if m == nil {
		fmt.Fprintf(c.stdout, "  %s has no known parameters\n\n", res.Case.Function)
		return
	}
	fmt.Fprintf(c.stdout, "  %s%s\n", res.Case.Function, m.Signature())

	type row struct{ arg, param, note string }
	var rows []row
	if pv := m.PipeValue(); pv != nil {
		param, ok := m.PipeParameter()
		if !ok {
			param = "(unmatched)"
		}
		rows = append(rows, row{prettyprinter.Sprint(pv), param, "piped"})
	}
	for i, arg := range m.Call().Arguments {
		param := "(unmatched)"
		if idx := m.ParameterIndexFor(i, false); idx != argmatch.Unmatched {
			param = m.Signature().Name(idx)
		}
		rows = append(rows, row{prettyprinter.Sprint(arg), param, ""})
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r.arg))
	}
	for _, r := range rows {
		line := fmt.Sprintf("    %-*s -> %s", width, r.arg, c.style.param.Render(r.param))
		if r.note != "" {
			line += " " + c.style.muted.Render("("+r.note+")")
		}
		fmt.Fprintln(c.stdout, line)
	}

	if unbound := m.UnboundParameters(); len(unbound) > 0 {
		fmt.Fprintf(c.stdout, "  unbound: %s\n", strings.Join(unbound, ", "))
	}
	for _, p := range m.Problems() {
		fmt.Fprintf(c.stdout, "  %s %s\n", c.style.warn.Render("problem:"), p.Message)
	}
	if at >= 0 {
		active := "none"
		if idx := m.ActiveParameter(at); idx != argmatch.Unmatched {
			active = m.Signature().Name(idx)
		}
		fmt.Fprintf(c.stdout, "  at %d: %s\n", at, active)
	}
	fmt.Fprintln(c.stdout)
}

func (c *cli) printIndex(ctx context.Context, store *index.Store) error {
	classes, err := store.Classes(ctx)
	if err != nil {
		return err
	}
	for _, cl := range classes {
		line := fmt.Sprintf("%s %s", c.style.muted.Render(cl.Kind), c.style.header.Render(cl.Name))
		if len(cl.Contains) > 0 {
			line += " : " + strings.Join(cl.Contains, ", ")
		}
		if cl.Virtual {
			line += " " + c.style.muted.Render("(virtual)")
		}
		fmt.Fprintln(c.stdout, line)
		for _, slot := range cl.Slots {
			fmt.Fprintf(c.stdout, "  %s: %s\n", slot.Name, slot.Type)
		}
		for _, method := range cl.Methods {
			fmt.Fprintf(c.stdout, "  %s()\n", method)
		}
	}

	generics, err := store.Generics(ctx)
	if err != nil {
		return err
	}
	for _, g := range generics {
		fmt.Fprintf(c.stdout, "%s %s\n", c.style.muted.Render("generic"), c.style.header.Render(g.Name))
		methods, err := store.Methods(ctx, g.Name)
		if err != nil {
			return err
		}
		for _, m := range methods {
			fmt.Fprintf(c.stdout, "  method (%s)\n", strings.Join(m.Signature, ", "))
		}
	}
	return nil
}
