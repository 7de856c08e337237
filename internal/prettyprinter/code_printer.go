package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/argmatch/internal/ast"
)

// --- Code Printer (Output looks like R source code) ---

// Operator precedence (higher = binds tighter), following R's operator table
var operatorPrecedence = map[string]int{
	"<-":   1,
	"=":    1,
	"||":   2,
	"|":    2,
	"&&":   3,
	"&":    3,
	"==":   4,
	"!=":   4,
	"<":    4,
	">":    4,
	"<=":   4,
	">=":   4,
	"+":    5,
	"-":    5,
	"*":    6,
	"/":    6,
	"%>%":  7, // Forward pipe, same level as other %op%
	"%in%": 7,
	"|>":   7,
	":":    8,
	"^":    9,
	"$":    10,
	"@":    10,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 7 // Unknown %op% operators share the pipe level
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"^":  true,
	"<-": true,
	"=":  true,
}

// CodePrinter renders call trees as R source and records the byte span of
// every node it writes into the node's Token, so caret offsets in the
// rendered text can be mapped back to arguments.
type CodePrinter struct {
	buf    bytes.Buffer
	layout bool
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{layout: true}
}

// Print renders n and lays out its spans.
func Print(n ast.Node) string {
	if n == nil {
		return ""
	}
	p := NewCodePrinter()
	n.Accept(p)
	return p.String()
}

// Sprint renders n without touching its spans, for showing a subexpression
// of a tree that was laid out as a whole.
func Sprint(n ast.Node) string {
	if n == nil {
		return ""
	}
	p := &CodePrinter{}
	n.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) offset() int {
	return p.buf.Len()
}

// record stores the span written since start into tok.
func (p *CodePrinter) record(tok *ast.Token, lexeme string, start int) {
	if p.layout {
		*tok = ast.Token{Lexeme: lexeme, Start: start, End: p.offset()}
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	e, ok := expr.(*ast.InfixExpression)
	if !ok {
		expr.Accept(p)
		return
	}
	if e == nil {
		p.write("<???>")
		return
	}
	prec := getPrecedence(e.Operator)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		if isRight && !rightAssoc[e.Operator] {
			needParens = true
		} else if !isRight && rightAssoc[e.Operator] {
			needParens = true
		}
	}
	if needParens {
		p.write("(")
	}
	p.printExpr(e.Left, prec, false)
	p.write(" ")
	start := p.offset()
	p.write(e.Operator)
	p.record(&e.Token, e.Operator, start)
	p.write(" ")
	p.printExpr(e.Right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	if n == nil {
		p.write("NULL")
		return
	}
	start := p.offset()
	p.write(formatSymbol(n.Value))
	p.record(&n.Token, n.Value, start)
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	if n == nil {
		p.write("NULL")
		return
	}
	start := p.offset()
	p.write(n.Value)
	p.record(&n.Token, n.Value, start)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	if n == nil {
		p.write("NULL")
		return
	}
	start := p.offset()
	quoted := strconv.Quote(n.Value)
	p.write(quoted)
	p.record(&n.Token, quoted, start)
}

func (p *CodePrinter) VisitVerbatim(n *ast.Verbatim) {
	if n == nil {
		p.write("NULL")
		return
	}
	start := p.offset()
	p.write(n.Text)
	p.record(&n.Token, n.Text, start)
}

func (p *CodePrinter) VisitArgument(n *ast.Argument) {
	if n == nil {
		p.write("<???>")
		return
	}
	start := p.offset()
	if n.Name != nil {
		n.Name.Accept(p)
		p.write(" = ")
	}
	if n.Value != nil {
		p.printExpr(n.Value, 0, false)
	}
	p.record(&n.Token, n.ArgName(), start)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	if n == nil {
		p.write("NULL")
		return
	}
	start := p.offset()
	if n.Function != nil {
		p.printExpr(n.Function, 100, false)
	} else {
		p.write("<???>")
	}
	p.write("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		if arg != nil {
			arg.Accept(p)
		} else {
			p.write("<???>")
		}
	}
	p.write(")")
	p.record(&n.Token, "(", start)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	if n == nil {
		p.write("NULL")
		return
	}
	// When called directly (not via printExpr), use lowest precedence context
	p.printExpr(n, 0, false)
}

// formatSymbol backquotes names that are not syntactic R identifiers.
func formatSymbol(name string) string {
	if name == "" || name == "..." || isSyntacticName(name) {
		return name
	}
	return "`" + name + "`"
}

func isSyntacticName(name string) bool {
	for i, r := range name {
		switch {
		case r == '.' || r == '_' && i > 0:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	if name[0] == '.' && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		return false
	}
	return true
}
