package ast

import (
	"github.com/google/uuid"
)

// Argument is one entry of a call's argument list.
// Name is nil for a positional argument, set for name = value.
type Argument struct {
	link
	Token    Token
	Name     *Identifier
	Value    Expression
	Injected bool // Synthesized from the left operand of a forward pipe
}

func (a *Argument) Accept(v Visitor)     { v.VisitArgument(a) }
func (a *Argument) TokenLiteral() string { return a.Token.Lexeme }
func (a *Argument) GetToken() Token {
	if a == nil {
		return Token{}
	}
	return a.Token
}
func (a *Argument) Span() Span { return Span{a.Token.Start, a.Token.End} }

// IsNamed reports whether the argument was written as name = value.
func (a *Argument) IsNamed() bool {
	return a != nil && a.Name != nil
}

// ArgName returns the argument's name, or "" for a positional argument.
func (a *Argument) ArgName() string {
	if !a.IsNamed() {
		return ""
	}
	return a.Name.Value
}

// Positional creates an unnamed argument.
func Positional(value Expression) *Argument {
	arg := &Argument{Value: value}
	adopt(arg, value)
	return arg
}

// Named creates a name = value argument.
func Named(name string, value Expression) *Argument {
	arg := &Argument{Name: Ident(name), Value: value}
	adopt(arg, arg.Name)
	adopt(arg, value)
	return arg
}

// CallExpression is a function call, f(a, b = c).
// ID is assigned by Call and stays stable across edits; it names the call in
// persisted records and is zero for nodes built as literals. revision is
// bumped by every edit of the argument list so memoized results can detect
// that the call they were computed for has changed.
type CallExpression struct {
	link
	Token     Token // The '(' token
	ID        uuid.UUID
	Function  Expression
	Arguments []*Argument
	revision  uint64
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() Token {
	if ce == nil {
		return Token{}
	}
	return ce.Token
}
func (ce *CallExpression) Span() Span { return Span{ce.Token.Start, ce.Token.End} }

// Call creates a call node with a fresh identity.
func Call(function Expression, args ...*Argument) *CallExpression {
	ce := &CallExpression{ID: uuid.New(), Function: function}
	adopt(ce, function)
	for _, arg := range args {
		adopt(ce, arg)
	}
	ce.Arguments = args
	return ce
}

// CallNamed is Call with an identifier as the callee.
func CallNamed(name string, args ...*Argument) *CallExpression {
	return Call(Ident(name), args...)
}

// FunctionName returns the callee's name when it is a plain identifier.
func (ce *CallExpression) FunctionName() string {
	if ce == nil {
		return ""
	}
	if ident, ok := ce.Function.(*Identifier); ok {
		return ident.Value
	}
	return ""
}

// Revision returns the edit counter of the argument list.
func (ce *CallExpression) Revision() uint64 {
	if ce == nil {
		return 0
	}
	return ce.revision
}

// Touch records an edit that happened outside the helpers below,
// e.g. a value replaced in place.
func (ce *CallExpression) Touch() {
	ce.revision++
}

// SetArguments replaces the whole argument list.
func (ce *CallExpression) SetArguments(args []*Argument) {
	for _, arg := range args {
		adopt(ce, arg)
	}
	ce.Arguments = args
	ce.revision++
}

// InsertArgument inserts arg before position i (clamped to the list bounds).
func (ce *CallExpression) InsertArgument(i int, arg *Argument) {
	if i < 0 {
		i = 0
	}
	if i > len(ce.Arguments) {
		i = len(ce.Arguments)
	}
	adopt(ce, arg)
	args := make([]*Argument, 0, len(ce.Arguments)+1)
	args = append(args, ce.Arguments[:i]...)
	args = append(args, arg)
	args = append(args, ce.Arguments[i:]...)
	ce.Arguments = args
	ce.revision++
}

// RemoveArgument deletes the argument at position i.
// It reports false when i is out of range.
func (ce *CallExpression) RemoveArgument(i int) bool {
	if i < 0 || i >= len(ce.Arguments) {
		return false
	}
	args := make([]*Argument, 0, len(ce.Arguments)-1)
	args = append(args, ce.Arguments[:i]...)
	args = append(args, ce.Arguments[i+1:]...)
	ce.Arguments = args
	ce.revision++
	return true
}

// ReplaceArgument swaps the argument at position i.
// It reports false when i is out of range.
func (ce *CallExpression) ReplaceArgument(i int, arg *Argument) bool {
	if i < 0 || i >= len(ce.Arguments) {
		return false
	}
	adopt(ce, arg)
	args := make([]*Argument, len(ce.Arguments))
	copy(args, ce.Arguments)
	args[i] = arg
	ce.Arguments = args
	ce.revision++
	return true
}

// InfixExpression is a binary operator application, e.g. a %>% f(b).
type InfixExpression struct {
	link
	Token    Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)     { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() Token {
	if ie == nil {
		return Token{}
	}
	return ie.Token
}
func (ie *InfixExpression) Span() Span {
	if ie.Left == nil || ie.Right == nil {
		return Span{ie.Token.Start, ie.Token.End}
	}
	return Span{ie.Left.Span().Start, ie.Right.Span().End}
}

// Infix creates an operator node and links both operands to it.
func Infix(left Expression, operator string, right Expression) *InfixExpression {
	ie := &InfixExpression{Token: Token{Lexeme: operator}, Left: left, Operator: operator, Right: right}
	adopt(ie, left)
	adopt(ie, right)
	return ie
}

// adopt sets parent as the parent of child, ignoring nil children.
func adopt(parent Node, child Node) {
	if child == nil || isNilNode(child) {
		return
	}
	child.setParent(parent)
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *NumberLiteral:
		return v == nil
	case *StringLiteral:
		return v == nil
	case *Verbatim:
		return v == nil
	case *Argument:
		return v == nil
	case *CallExpression:
		return v == nil
	case *InfixExpression:
		return v == nil
	}
	return false
}
