package ast

// Token is the source fragment a node was built from.
// Start and End are byte offsets into the source text, End exclusive.
// Nodes built programmatically have zero offsets until a printer lays them out.
type Token struct {
	Lexeme string
	Start  int
	End    int
}

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Contains reports whether a caret at offset touches the span.
// A caret placed right after the last character still counts, which is
// where it sits while an argument is being typed.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() Token
	Span() Span
	Parent() Node
	setParent(parent Node)
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// link holds the parent pointer shared by every node.
type link struct {
	parent Node
}

func (l *link) Parent() Node          { return l.parent }
func (l *link) setParent(parent Node) { l.parent = parent }

// Identifier is a bare symbol, e.g. x or mean.
type Identifier struct {
	link
	Token Token
	Value string
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() Token {
	if i == nil {
		return Token{}
	}
	return i.Token
}
func (i *Identifier) Span() Span { return Span{i.Token.Start, i.Token.End} }

// NumberLiteral keeps the number as written (40, 1.5e3, 10L).
type NumberLiteral struct {
	link
	Token Token
	Value string
}

func (nl *NumberLiteral) Accept(v Visitor)     { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() Token {
	if nl == nil {
		return Token{}
	}
	return nl.Token
}
func (nl *NumberLiteral) Span() Span { return Span{nl.Token.Start, nl.Token.End} }

// StringLiteral holds the unquoted string value.
type StringLiteral struct {
	link
	Token Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() Token {
	if sl == nil {
		return Token{}
	}
	return sl.Token
}
func (sl *StringLiteral) Span() Span { return Span{sl.Token.Start, sl.Token.End} }

// Verbatim is an expression kept as opaque source text.
// Binding never looks inside argument values, so anything that is not a
// call, an identifier or a literal can be carried this way.
type Verbatim struct {
	link
	Token Token
	Text  string
}

func (vb *Verbatim) Accept(v Visitor)     { v.VisitVerbatim(vb) }
func (vb *Verbatim) expressionNode()      {}
func (vb *Verbatim) TokenLiteral() string { return vb.Token.Lexeme }
func (vb *Verbatim) GetToken() Token {
	if vb == nil {
		return Token{}
	}
	return vb.Token
}
func (vb *Verbatim) Span() Span { return Span{vb.Token.Start, vb.Token.End} }

// Ident creates an identifier node.
func Ident(name string) *Identifier {
	return &Identifier{Token: Token{Lexeme: name}, Value: name}
}

// Number creates a number literal node.
func Number(text string) *NumberLiteral {
	return &NumberLiteral{Token: Token{Lexeme: text}, Value: text}
}

// String creates a string literal node from its unquoted value.
func String(value string) *StringLiteral {
	return &StringLiteral{Token: Token{Lexeme: value}, Value: value}
}

// Text creates an opaque expression node.
func Text(text string) *Verbatim {
	return &Verbatim{Token: Token{Lexeme: text}, Text: text}
}
