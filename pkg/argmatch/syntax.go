package argmatch

import (
	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/binding"
	"github.com/funvibe/argmatch/internal/cache"
)

// Syntax model aliases, so that callers outside this module can build the
// trees a Resolver matches.
type Node = ast.Node
type Expression = ast.Expression
type Span = ast.Span
type Token = ast.Token
type Identifier = ast.Identifier
type NumberLiteral = ast.NumberLiteral
type StringLiteral = ast.StringLiteral
type Verbatim = ast.Verbatim
type Argument = ast.Argument
type CallExpression = ast.CallExpression
type InfixExpression = ast.InfixExpression

// Parameter list and cache aliases
type Signature = binding.Signature
type Param = binding.Param
type Binding = binding.Binding
type ProblemKind = binding.ProblemKind
type Cache = cache.Cache
type CacheStats = cache.Stats

// Problem kinds.
const (
	DuplicateName     = binding.DuplicateName
	UnknownName       = binding.UnknownName
	TooManyPositional = binding.TooManyPositional
)

// Signature errors.
var (
	ErrDuplicateParameter = binding.ErrDuplicateParameter
	ErrMultipleVariadic   = binding.ErrMultipleVariadic
	ErrEmptyParameter     = binding.ErrEmptyParameter
)

// Ident creates an identifier.
func Ident(name string) *Identifier { return ast.Ident(name) }

// Number creates a numeric literal from its source text.
func Number(text string) *NumberLiteral { return ast.Number(text) }

// String creates a string literal holding value.
func String(value string) *StringLiteral { return ast.String(value) }

// Text wraps source text the model does not break down further.
func Text(text string) *Verbatim { return ast.Text(text) }

// Positional creates an unnamed argument.
func Positional(value Expression) *Argument { return ast.Positional(value) }

// Named creates a name = value argument.
func Named(name string, value Expression) *Argument { return ast.Named(name, value) }

// Call creates a call node.
func Call(function Expression, args ...*Argument) *CallExpression {
	return ast.Call(function, args...)
}

// CallNamed is Call with an identifier as the callee.
func CallNamed(name string, args ...*Argument) *CallExpression {
	return ast.CallNamed(name, args...)
}

// Infix creates an operator node, e.g. a forward pipe.
func Infix(left Expression, operator string, right Expression) *InfixExpression {
	return ast.Infix(left, operator, right)
}

// NewSignature builds a parameter list from params.
func NewSignature(params ...Param) (Signature, error) {
	return binding.NewSignature(params...)
}

// ParseSignature parses formal parameter names; "..." or "name=..." marks
// the rest slot.
func ParseSignature(names []string) (Signature, error) {
	return binding.ParseSignature(names)
}

// NewCache creates an empty binding cache for WithCache.
func NewCache() *Cache {
	return cache.New()
}
