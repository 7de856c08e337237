package binding

import (
	"fmt"
	"sort"
)

// ProblemKind classifies why an argument is Unmatched.
type ProblemKind int

const (
	// DuplicateName: a named argument repeats a name an earlier one already claimed.
	DuplicateName ProblemKind = iota + 1
	// UnknownName: a named argument matches no parameter and there is no rest slot.
	UnknownName
	// TooManyPositional: a positional argument found no free parameter.
	TooManyPositional
)

func (k ProblemKind) String() string {
	switch k {
	case DuplicateName:
		return "duplicate-name"
	case UnknownName:
		return "unknown-name"
	case TooManyPositional:
		return "too-many-positional"
	}
	return fmt.Sprintf("ProblemKind(%d)", int(k))
}

// Problem is one Unmatched argument. Arg indexes the matched sequence,
// which starts with the pipe value when one was injected.
type Problem struct {
	Arg  int
	Kind ProblemKind
	Name string
}

func (p Problem) String() string {
	switch p.Kind {
	case DuplicateName:
		return fmt.Sprintf("argument %d: formal argument %q matched by multiple actual arguments", p.Arg+1, p.Name)
	case UnknownName:
		return fmt.Sprintf("argument %d: unused argument %s", p.Arg+1, p.Name)
	case TooManyPositional:
		return fmt.Sprintf("argument %d: unused positional argument", p.Arg+1)
	}
	return fmt.Sprintf("argument %d: %s", p.Arg+1, p.Kind)
}

func sortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Arg < problems[j].Arg
	})
}
