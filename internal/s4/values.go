package s4

import (
	"github.com/funvibe/argmatch/internal/ast"
)

// Calls whose arguments are read as a list of values.
var listConstructors = map[string]bool{
	"c":              true,
	"list":           true,
	"representation": true,
	"signature":      true,
	"character":      true,
}

const virtualClass = "VIRTUAL"

// stringValue returns the value of a string literal. A bare identifier is
// accepted too, since setGeneric(name = foo) style calls appear in the wild.
func stringValue(e ast.Expression) (string, bool) {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return v.Value, true
	case *ast.Identifier:
		return v.Value, true
	}
	return "", false
}

// listArguments returns the arguments of c(...)-like calls, or nil.
func listArguments(e ast.Expression) []*ast.Argument {
	call, ok := e.(*ast.CallExpression)
	if !ok || !listConstructors[call.FunctionName()] {
		return nil
	}
	return call.Arguments
}

// stringList reads "A" or c("A", "B") as a list of strings.
// Named entries contribute their value: signature(x = "numeric") is ["numeric"].
func stringList(e ast.Expression) []string {
	if s, ok := e.(*ast.StringLiteral); ok {
		return []string{s.Value}
	}
	var out []string
	for _, arg := range listArguments(e) {
		if arg == nil {
			continue
		}
		if s, ok := arg.Value.(*ast.StringLiteral); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

// slotList reads c(name = "type", ...) as slots. In a slots argument an
// unnamed string names an untyped slot; unnamed strings of representation()
// are superclasses and are read by unnamedStrings instead.
func slotList(e ast.Expression) []Slot {
	var out []Slot
	call, _ := e.(*ast.CallExpression)
	isRepresentation := call != nil && call.FunctionName() == "representation"
	if s, ok := e.(*ast.StringLiteral); ok {
		return []Slot{{Name: s.Value, Type: "ANY"}}
	}
	for _, arg := range listArguments(e) {
		if arg == nil {
			continue
		}
		typ, isString := arg.Value.(*ast.StringLiteral)
		switch {
		case arg.IsNamed() && isString:
			out = append(out, Slot{Name: arg.ArgName(), Type: typ.Value})
		case arg.IsNamed():
			out = append(out, Slot{Name: arg.ArgName(), Type: "ANY"})
		case isString && !isRepresentation:
			out = append(out, Slot{Name: typ.Value, Type: "ANY"})
		}
	}
	return out
}

// unnamedStrings returns the unnamed string entries of a list call.
func unnamedStrings(e ast.Expression) []string {
	var out []string
	for _, arg := range listArguments(e) {
		if arg == nil || arg.IsNamed() {
			continue
		}
		if s, ok := arg.Value.(*ast.StringLiteral); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

// names returns the argument names of list(a = function() ..., b = ...).
func names(e ast.Expression) []string {
	var out []string
	for _, arg := range listArguments(e) {
		if arg.IsNamed() {
			out = append(out, arg.ArgName())
		}
	}
	return out
}

// dropVirtual removes the VIRTUAL marker from a superclass list.
func dropVirtual(classes []string) ([]string, bool) {
	out := classes[:0]
	virtual := false
	for _, c := range classes {
		if c == virtualClass {
			virtual = true
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, virtual
	}
	return out, virtual
}
