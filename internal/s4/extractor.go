// Package s4 recovers class, generic and method declarations from calls to
// the object-system registration functions (setClass, setRefClass,
// setGeneric, setMethod, new).
//
// Each registration call is matched against the function's known parameter
// list, so setClass("P", slots = c(x = "numeric")) and
// setClass(slots = c(x = "numeric"), "P") yield the same declaration. The
// values passed for the interesting parameters are then read structurally:
// string literals, and c(...), list(...) or representation(...) calls.
package s4

import (
	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/config"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

// Kind tells which registration function a declaration came from.
type Kind int

const (
	ClassDecl Kind = iota + 1
	RefClassDecl
	GenericDecl
	MethodDecl
	InstanceDecl
)

func (k Kind) String() string {
	switch k {
	case ClassDecl:
		return "class"
	case RefClassDecl:
		return "refclass"
	case GenericDecl:
		return "generic"
	case MethodDecl:
		return "method"
	case InstanceDecl:
		return "instance"
	}
	return "unknown"
}

// Slot is a typed member: a class slot or a reference-class field.
type Slot struct {
	Name string
	Type string
}

// Declaration is what one registration call declares. Which fields are set
// depends on Kind:
//
//	class, refclass: Name, Slots, Contains, Virtual (class), Methods (refclass)
//	generic:         Name, Signature, ValueClass, HasDefinition
//	method:          Name (the generic), Signature, HasDefinition
//	instance:        Name (the class), Slots (initialized slots, Type empty)
type Declaration struct {
	Kind          Kind
	Name          string
	Slots         []Slot
	Contains      []string
	Methods       []string
	Signature     []string
	ValueClass    []string
	Virtual       bool
	HasDefinition bool
	Valid         bool // the call's arguments all matched a parameter
	Call          *ast.CallExpression
}

// Extractor reads declarations through an argmatch.Resolver.
type Extractor struct {
	resolver *argmatch.Resolver
}

// NewExtractor creates an Extractor. A nil resolver gets a private one.
func NewExtractor(r *argmatch.Resolver) *Extractor {
	if r == nil {
		r = argmatch.New()
	}
	return &Extractor{resolver: r}
}

// Extract returns the declaration made by call, or false when call is not a
// registration call or lacks the name it must declare.
func (e *Extractor) Extract(call *ast.CallExpression) (Declaration, bool) {
	function := call.FunctionName()
	sig, ok := SignatureOf(function)
	if !ok {
		return Declaration{}, false
	}
	m := e.resolver.Match(call, &sig)
	if m == nil {
		return Declaration{}, false
	}
	decl := Declaration{Valid: m.IsValid(), Call: call}

	switch function {
	case config.SetClassFuncName:
		decl.Kind = ClassDecl
		decl.Name, ok = stringValue(m.ArgumentForName(config.ClassParamName))
		decl.Slots = slotList(m.ArgumentForName(config.SlotsParamName))
		rep := m.ArgumentForName(config.RepresentationParamName)
		decl.Slots = append(decl.Slots, slotList(rep)...)
		decl.Contains = append(decl.Contains, unnamedStrings(rep)...)
		decl.Contains = append(decl.Contains, stringList(m.ArgumentForName(config.ContainsParamName))...)
		decl.Contains, decl.Virtual = dropVirtual(decl.Contains)
		if rep == nil && len(decl.Slots) == 0 && m.ArgumentForName("prototype") == nil && len(decl.Contains) == 0 {
			// setClass("A") with nothing else declares a virtual class.
			decl.Virtual = true
		}
	case config.SetRefClassFuncName:
		decl.Kind = RefClassDecl
		decl.Name, ok = stringValue(m.ArgumentForName(config.ClassParamName))
		decl.Slots = slotList(m.ArgumentForName(config.FieldsParamName))
		decl.Contains = stringList(m.ArgumentForName(config.ContainsParamName))
		decl.Methods = names(m.ArgumentForName(config.MethodsParamName))
	case config.SetGenericFuncName:
		decl.Kind = GenericDecl
		decl.Name, ok = stringValue(m.ArgumentForName(config.NameParamName))
		decl.Signature = stringList(m.ArgumentForName(config.SignatureParamName))
		decl.ValueClass = stringList(m.ArgumentForName(config.ValueClassParamName))
		decl.HasDefinition = m.ArgumentForName(config.DefParamName) != nil
	case config.SetMethodFuncName:
		decl.Kind = MethodDecl
		decl.Name, ok = stringValue(m.ArgumentForName(config.GenericParamName))
		decl.Signature = stringList(m.ArgumentForName(config.SignatureParamName))
		decl.HasDefinition = m.ArgumentForName(config.DefinitionParamName) != nil
	case config.NewFuncName:
		decl.Kind = InstanceDecl
		decl.Name, ok = stringValue(m.ArgumentForName(config.ClassParamName))
		for _, arg := range m.VariadicArgumentNodes() {
			if arg.IsNamed() {
				decl.Slots = append(decl.Slots, Slot{Name: arg.ArgName()})
			}
		}
	}
	if !ok || decl.Name == "" {
		return Declaration{}, false
	}
	return decl, true
}

// ExtractAll walks root and returns every declaration in source order.
func (e *Extractor) ExtractAll(root ast.Node) []Declaration {
	var out []Declaration
	ast.Inspect(root, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}
		if decl, ok := e.Extract(call); ok {
			out = append(out, decl)
		}
		return true
	})
	return out
}
