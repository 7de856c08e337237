package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/argmatch/internal/config"
)

var (
	// ErrDuplicateParameter is returned when two non-variadic parameters share a name.
	ErrDuplicateParameter = errors.New("duplicate parameter name")
	// ErrMultipleVariadic is returned when more than one parameter is variadic.
	ErrMultipleVariadic = errors.New("multiple variadic parameters")
	// ErrEmptyParameter is returned for a parameter without a name.
	ErrEmptyParameter = errors.New("empty parameter name")
)

// Param is one formal parameter. Variadic marks the rest slot, which
// absorbs surplus positional arguments and unknown named ones.
type Param struct {
	Name     string
	Variadic bool
}

func (p Param) String() string {
	if !p.Variadic {
		return p.Name
	}
	if p.Name == config.VariadicName {
		return p.Name
	}
	return p.Name + config.VariadicSuffix
}

// Signature is an ordered formal parameter list with at most one variadic slot.
type Signature struct {
	Params []Param
}

// NewSignature validates params and wraps them in a Signature.
func NewSignature(params ...Param) (Signature, error) {
	seen := make(map[string]bool, len(params))
	variadic := -1
	for i, p := range params {
		if p.Name == "" {
			return Signature{}, fmt.Errorf("parameter %d: %w", i, ErrEmptyParameter)
		}
		if p.Variadic {
			if variadic >= 0 {
				return Signature{}, fmt.Errorf("parameters %d and %d: %w", variadic, i, ErrMultipleVariadic)
			}
			variadic = i
			continue
		}
		if seen[p.Name] {
			return Signature{}, fmt.Errorf("parameter %q: %w", p.Name, ErrDuplicateParameter)
		}
		seen[p.Name] = true
	}
	return Signature{Params: params}, nil
}

// ParseSignature builds a Signature from parameter names as they are written
// in a definition. "..." is the anonymous rest slot and "name=..." a named one.
func ParseSignature(names []string) (Signature, error) {
	params := make([]Param, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == config.VariadicName:
			params = append(params, Param{Name: name, Variadic: true})
		case strings.HasSuffix(name, config.VariadicSuffix):
			params = append(params, Param{Name: strings.TrimSpace(strings.TrimSuffix(name, config.VariadicSuffix)), Variadic: true})
		default:
			params = append(params, Param{Name: name})
		}
	}
	return NewSignature(params...)
}

// MustSignature is ParseSignature for hard-coded parameter lists.
// It panics if the list is invalid.
func MustSignature(names ...string) Signature {
	sig, err := ParseSignature(names)
	if err != nil {
		panic(fmt.Sprintf("binding: invalid signature %v: %v", names, err))
	}
	return sig
}

// Len returns the number of parameters.
func (s Signature) Len() int {
	return len(s.Params)
}

// Names returns the parameter names in declaration order.
func (s Signature) Names() []string {
	out := make([]string, len(s.Params))
	for i, p := range s.Params {
		out[i] = p.Name
	}
	return out
}

// Name returns the name of parameter i, or "" when i is out of range.
func (s Signature) Name(i int) string {
	if i < 0 || i >= len(s.Params) {
		return ""
	}
	return s.Params[i].Name
}

// VariadicIndex returns the index of the rest slot, or Unmatched.
func (s Signature) VariadicIndex() int {
	for i, p := range s.Params {
		if p.Variadic {
			return i
		}
	}
	return Unmatched
}

// IsVariadic reports whether parameter i is the rest slot.
func (s Signature) IsVariadic(i int) bool {
	return i >= 0 && i < len(s.Params) && s.Params[i].Variadic
}

// Index returns the index of the parameter called name, or Unmatched.
// The rest slot is found by its own name as well.
func (s Signature) Index(name string) int {
	for i, p := range s.Params {
		if p.Name == name {
			return i
		}
	}
	return Unmatched
}

// byName maps each parameter name to its first index.
func (s Signature) byName() map[string]int {
	m := make(map[string]int, len(s.Params))
	for i, p := range s.Params {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = i
		}
	}
	return m
}

// Equal reports whether both signatures list the same parameters in order.
func (s Signature) Equal(other Signature) bool {
	if len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != other.Params[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
