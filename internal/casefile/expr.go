package casefile

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/argmatch/internal/ast"
)

var (
	identPattern  = regexp.MustCompile(`^(\.[A-Za-z_.]|[A-Za-z])[A-Za-z0-9_.]*$|^\.$|^\.\.\.$`)
	numberPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?[Li]?$`)
)

// Expr is an expression written in a case file: a scalar, or a nested call.
type Expr struct {
	// Text is the scalar form.
	Text string `yaml:"-"`

	// Call and Args describe a nested call.
	Call string `yaml:"call,omitempty"`
	Args []Arg  `yaml:"args,omitempty"`
}

// UnmarshalYAML accepts a scalar or a {call, args} mapping.
func (e *Expr) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.Text = value.Value
		return nil
	case yaml.MappingNode:
		type plain Expr
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		if p.Call == "" {
			return fmt.Errorf("line %d: expression mapping needs a call key", value.Line)
		}
		*e = Expr(p)
		return nil
	}
	return fmt.Errorf("line %d: expression must be a scalar or a {call, args} mapping", value.Line)
}

// Build turns the expression into a syntax node.
func (e Expr) Build() ast.Expression {
	if e.Call != "" {
		return ast.CallNamed(e.Call, buildArgs(e.Args)...)
	}
	return scalar(e.Text)
}

// scalar classifies scalar text: "quoted" or 'quoted' strings, numbers,
// identifiers, and anything else as opaque text.
func scalar(text string) ast.Expression {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && first == last {
			return ast.String(text[1 : len(text)-1])
		}
	}
	switch {
	case numberPattern.MatchString(text):
		return ast.Number(text)
	case identPattern.MatchString(text):
		return ast.Ident(text)
	}
	return ast.Text(text)
}

// Arg is one argument of a call in a case file.
type Arg struct {
	Name  string
	Value Expr
}

// UnmarshalYAML accepts an expression, or {name, value} for a named argument.
func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode && hasKey(value, "name") {
		var named struct {
			Name  string `yaml:"name"`
			Value *Expr  `yaml:"value"`
		}
		if err := value.Decode(&named); err != nil {
			return err
		}
		if named.Name == "" {
			return fmt.Errorf("line %d: named argument needs a non-empty name", value.Line)
		}
		if named.Value == nil {
			return fmt.Errorf("line %d: named argument %q needs a value", value.Line, named.Name)
		}
		a.Name = named.Name
		a.Value = *named.Value
		return nil
	}
	return value.Decode(&a.Value)
}

// Build turns the argument into a syntax node.
func (a Arg) Build() *ast.Argument {
	if a.Name != "" {
		return ast.Named(a.Name, a.Value.Build())
	}
	return ast.Positional(a.Value.Build())
}

func buildArgs(args []Arg) []*ast.Argument {
	out := make([]*ast.Argument, len(args))
	for i, a := range args {
		out[i] = a.Build()
	}
	return out
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
