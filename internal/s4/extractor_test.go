package s4

import (
	"reflect"
	"testing"

	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

func str(s string) *ast.StringLiteral { return ast.String(s) }

func c(args ...*ast.Argument) *ast.CallExpression { return ast.CallNamed("c", args...) }

func TestExtract_SetClass(t *testing.T) {
	testCases := []struct {
		name string
		call *ast.CallExpression
		want Declaration
	}{
		{
			name: "positional_class_and_named_slots",
			call: ast.CallNamed("setClass",
				ast.Positional(str("Person")),
				ast.Named("slots", c(ast.Named("name", str("character")), ast.Named("age", str("numeric")))),
			),
			want: Declaration{
				Kind:  ClassDecl,
				Name:  "Person",
				Slots: []Slot{{"name", "character"}, {"age", "numeric"}},
				Valid: true,
			},
		},
		{
			name: "named_arguments_out_of_order",
			call: ast.CallNamed("setClass",
				ast.Named("contains", str("Person")),
				ast.Named("slots", c(ast.Positional(str("boss")))),
				ast.Named("Class", str("Employee")),
			),
			want: Declaration{
				Kind:     ClassDecl,
				Name:     "Employee",
				Slots:    []Slot{{"boss", "ANY"}},
				Contains: []string{"Person"},
				Valid:    true,
			},
		},
		{
			name: "representation_with_virtual",
			call: ast.CallNamed("setClass",
				ast.Positional(str("Shape")),
				ast.Positional(ast.CallNamed("representation", ast.Positional(str("VIRTUAL")), ast.Named("id", str("integer")))),
			),
			want: Declaration{
				Kind:    ClassDecl,
				Name:    "Shape",
				Slots:   []Slot{{"id", "integer"}},
				Virtual: true,
				Valid:   true,
			},
		},
		{
			name: "bare_class_is_virtual",
			call: ast.CallNamed("setClass", ast.Positional(str("Base"))),
			want: Declaration{Kind: ClassDecl, Name: "Base", Virtual: true, Valid: true},
		},
		{
			name: "unknown_argument_still_extracted",
			call: ast.CallNamed("setClass", ast.Positional(str("Odd")), ast.Named("bogus", str("x")), ast.Named("contains", str("Base"))),
			want: Declaration{Kind: ClassDecl, Name: "Odd", Contains: []string{"Base"}, Valid: false},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decl, ok := NewExtractor(nil).Extract(tc.call)
			if !ok {
				t.Fatal("Extract reported no declaration")
			}
			tc.want.Call = tc.call
			if !reflect.DeepEqual(decl, tc.want) {
				t.Errorf("Extract() =\n%+v\nwant\n%+v", decl, tc.want)
			}
		})
	}
}

func TestExtract_SetRefClass(t *testing.T) {
	call := ast.CallNamed("setRefClass",
		ast.Positional(str("Account")),
		ast.Named("fields", ast.CallNamed("list", ast.Named("balance", str("numeric")))),
		ast.Named("methods", ast.CallNamed("list",
			ast.Named("deposit", ast.Text("function(x) balance <<- balance + x")),
			ast.Named("show", ast.Text("function() cat(balance)")),
		)),
	)
	decl, ok := NewExtractor(nil).Extract(call)
	if !ok {
		t.Fatal("no declaration")
	}
	if decl.Kind != RefClassDecl || decl.Name != "Account" {
		t.Errorf("decl = %v %q", decl.Kind, decl.Name)
	}
	if !reflect.DeepEqual(decl.Slots, []Slot{{"balance", "numeric"}}) {
		t.Errorf("Slots = %v", decl.Slots)
	}
	if !reflect.DeepEqual(decl.Methods, []string{"deposit", "show"}) {
		t.Errorf("Methods = %v", decl.Methods)
	}
}

func TestExtract_GenericAndMethod(t *testing.T) {
	generic := ast.CallNamed("setGeneric",
		ast.Positional(str("area")),
		ast.Positional(ast.Text(`function(shape, ...) standardGeneric("area")`)),
		ast.Named("valueClass", str("numeric")),
	)
	method := ast.CallNamed("setMethod",
		ast.Positional(str("area")),
		ast.Named("definition", ast.Text("function(shape, ...) shape@r^2 * pi")),
		ast.Positional(ast.CallNamed("signature", ast.Named("shape", str("Circle")))),
	)
	root := ast.Infix(generic, "<-", ast.Call(ast.Ident("list"), ast.Positional(method)))

	decls := NewExtractor(argmatch.New()).ExtractAll(root)
	if len(decls) != 2 {
		t.Fatalf("ExtractAll found %d declarations, want 2", len(decls))
	}

	g := decls[0]
	if g.Kind != GenericDecl || g.Name != "area" || !g.HasDefinition {
		t.Errorf("generic = %+v", g)
	}
	if !reflect.DeepEqual(g.ValueClass, []string{"numeric"}) {
		t.Errorf("ValueClass = %v", g.ValueClass)
	}

	m := decls[1]
	if m.Kind != MethodDecl || m.Name != "area" || !m.HasDefinition {
		t.Errorf("method = %+v", m)
	}
	// The positional signature(...) skips over the named definition slot.
	if !reflect.DeepEqual(m.Signature, []string{"Circle"}) {
		t.Errorf("Signature = %v, want [Circle]", m.Signature)
	}
}

func TestExtract_NewThroughPipe(t *testing.T) {
	// "Person" %>% new(name = "Ann", age = 3)
	call := ast.CallNamed("new", ast.Named("name", str("Ann")), ast.Named("age", ast.Number("3")))
	ast.Infix(str("Person"), "%>%", call)

	decl, ok := NewExtractor(nil).Extract(call)
	if !ok {
		t.Fatal("no declaration")
	}
	if decl.Kind != InstanceDecl || decl.Name != "Person" {
		t.Errorf("decl = %v %q, want instance of Person", decl.Kind, decl.Name)
	}
	if !reflect.DeepEqual(decl.Slots, []Slot{{Name: "name"}, {Name: "age"}}) {
		t.Errorf("Slots = %v", decl.Slots)
	}
}

func TestExtract_NotADeclaration(t *testing.T) {
	testCases := []*ast.CallExpression{
		ast.CallNamed("print", ast.Positional(str("x"))),
		ast.CallNamed("setClass"),
		ast.CallNamed("setClass", ast.Positional(ast.Number("1"))),
		ast.Call(ast.Text("obj$setClass"), ast.Positional(str("X"))),
		nil,
	}
	for i, call := range testCases {
		if decl, ok := NewExtractor(nil).Extract(call); ok {
			t.Errorf("case %d: unexpected declaration %+v", i, decl)
		}
	}
}

func TestSignatureOf(t *testing.T) {
	for _, name := range []string{"setClass", "setRefClass", "setGeneric", "setMethod", "new"} {
		if _, ok := SignatureOf(name); !ok {
			t.Errorf("SignatureOf(%s) missing", name)
		}
	}
	if _, ok := SignatureOf("setValidity"); ok {
		t.Error("SignatureOf(setValidity) should be unknown")
	}
	if s, _ := SignatureOf("setRefClass"); s.VariadicIndex() != 6 {
		t.Errorf("setRefClass rest slot at %d, want 6", s.VariadicIndex())
	}
}

func TestKind_String(t *testing.T) {
	if ClassDecl.String() != "class" || InstanceDecl.String() != "instance" || Kind(0).String() != "unknown" {
		t.Error("Kind.String mismatch")
	}
}
