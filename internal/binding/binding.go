// Package binding maps the arguments of a call to the formal parameters of
// the function it targets.
//
// Matching follows the rules of R-like calls: named arguments reserve their
// parameter first, regardless of where they appear, then unnamed arguments
// fill the remaining parameters left to right. A single variadic parameter
// absorbs positional overflow and names that match nothing.
//
// Malformed calls never produce an error. They produce a Binding in which
// the offending arguments are Unmatched, and Valid reports false.
package binding

import (
	"github.com/funvibe/argmatch/internal/ast"
)

// Unmatched marks an argument that fills no parameter.
const Unmatched = -1

// Binding is the result of matching one argument sequence against one
// Signature. It is never modified after Bind returns.
type Binding struct {
	slots    []int
	unbound  []int
	routed   []int // argument indices routed to the variadic slot, in order
	problems []Problem
	injected bool
}

// Bind matches args against sig. The returned Binding has exactly one slot
// per argument. A leading argument flagged Injected is treated like any other
// positional argument; the flag is only remembered so callers can translate
// indices back to the written argument list.
func Bind(args []*ast.Argument, sig Signature) *Binding {
	b := &Binding{
		slots:    make([]int, len(args)),
		injected: len(args) > 0 && args[0] != nil && args[0].Injected,
	}
	variadic := sig.VariadicIndex()
	index := sig.byName()
	claimed := make(map[string]bool, len(sig.Params))
	usedNames := make(map[string]bool)

	// Pass 1: named arguments reserve their parameter.
	for i, arg := range args {
		if !arg.IsNamed() {
			continue
		}
		name := arg.ArgName()
		usedNames[name] = true
		if claimed[name] {
			// The first occurrence keeps the slot.
			b.slots[i] = Unmatched
			b.problems = append(b.problems, Problem{Arg: i, Kind: DuplicateName, Name: name})
			continue
		}
		if idx, ok := index[name]; ok && !sig.IsVariadic(idx) {
			b.slots[i] = idx
			claimed[name] = true
			continue
		}
		if variadic != Unmatched {
			b.slots[i] = variadic
			continue
		}
		b.slots[i] = Unmatched
		b.problems = append(b.problems, Problem{Arg: i, Kind: UnknownName, Name: name})
	}

	// Pass 2: positional arguments fill what is left, left to right.
	cursor := 0
	for i, arg := range args {
		if arg.IsNamed() {
			continue
		}
		for cursor < len(sig.Params) && !sig.Params[cursor].Variadic {
			name := sig.Params[cursor].Name
			if !claimed[name] && !usedNames[name] {
				break
			}
			cursor++
		}
		switch {
		case cursor >= len(sig.Params):
			b.slots[i] = Unmatched
			b.problems = append(b.problems, Problem{Arg: i, Kind: TooManyPositional})
		case sig.Params[cursor].Variadic:
			// The cursor stays on the rest slot so it keeps absorbing.
			b.slots[i] = cursor
		default:
			b.slots[i] = cursor
			claimed[sig.Params[cursor].Name] = true
			cursor++
		}
	}

	for i, slot := range b.slots {
		if slot != Unmatched && slot == variadic {
			b.routed = append(b.routed, i)
		}
	}
	for idx, p := range sig.Params {
		if p.Variadic {
			if len(b.routed) == 0 {
				b.unbound = append(b.unbound, idx)
			}
			continue
		}
		if !claimed[p.Name] {
			b.unbound = append(b.unbound, idx)
		}
	}
	sortProblems(b.problems)
	return b
}

// Len returns the number of matched arguments, the pipe value included.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.slots)
}

// Slot returns the parameter index of argument i, or Unmatched when the
// argument fills no parameter or i is out of range.
func (b *Binding) Slot(i int) int {
	if b == nil || i < 0 || i >= len(b.slots) {
		return Unmatched
	}
	return b.slots[i]
}

// Slots returns a copy of the argument-to-parameter permutation.
func (b *Binding) Slots() []int {
	if b == nil {
		return nil
	}
	out := make([]int, len(b.slots))
	copy(out, b.slots)
	return out
}

// Unbound returns the indices of parameters that received no argument,
// in declaration order. The variadic slot is listed only when nothing was
// routed to it.
func (b *Binding) Unbound() []int {
	if b == nil {
		return nil
	}
	out := make([]int, len(b.unbound))
	copy(out, b.unbound)
	return out
}

// Routed returns the indices of the arguments captured by the variadic slot,
// in argument order.
func (b *Binding) Routed() []int {
	if b == nil {
		return nil
	}
	out := make([]int, len(b.routed))
	copy(out, b.routed)
	return out
}

// Arguments returns the indices of every argument bound to parameter idx,
// in argument order.
func (b *Binding) Arguments(idx int) []int {
	if b == nil || idx < 0 {
		return nil
	}
	var out []int
	for i, slot := range b.slots {
		if slot == idx {
			out = append(out, i)
		}
	}
	return out
}

// Injected reports whether argument 0 is a synthesized pipe value.
func (b *Binding) Injected() bool {
	return b != nil && b.injected
}

// Valid reports whether every argument fills a parameter.
func (b *Binding) Valid() bool {
	if b == nil {
		return false
	}
	for _, slot := range b.slots {
		if slot == Unmatched {
			return false
		}
	}
	return true
}

// Problems describes every Unmatched argument, ordered by argument index.
func (b *Binding) Problems() []Problem {
	if b == nil {
		return nil
	}
	out := make([]Problem, len(b.problems))
	copy(out, b.problems)
	return out
}

// Equal reports whether two bindings assign the same slots.
func (b *Binding) Equal(other *Binding) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.injected != other.injected || len(b.slots) != len(other.slots) || len(b.unbound) != len(other.unbound) {
		return false
	}
	for i := range b.slots {
		if b.slots[i] != other.slots[i] {
			return false
		}
	}
	for i := range b.unbound {
		if b.unbound[i] != other.unbound[i] {
			return false
		}
	}
	return true
}
