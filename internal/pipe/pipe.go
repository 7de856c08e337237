// Package pipe rewrites `value %>% f(args)` into the argument list
// `f(value, args)` sees, for matching purposes only.
package pipe

import (
	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/config"
)

// Source returns the left operand of the forward pipe whose right operand is
// call, or nil when call is not the target of a pipe.
func Source(call *ast.CallExpression) ast.Expression {
	if call == nil {
		return nil
	}
	infix, ok := call.Parent().(*ast.InfixExpression)
	if !ok || infix == nil || !config.IsPipeOperator(infix.Operator) {
		return nil
	}
	// Only the right operand is the pipe target: in f(x) %>% g(), f is not.
	if right, ok := infix.Right.(*ast.CallExpression); !ok || right != call {
		return nil
	}
	return infix.Left
}

// Effective returns the argument sequence to match: the pipe value as a
// leading positional argument followed by the written arguments, or the
// written arguments unchanged. The call is not modified.
func Effective(call *ast.CallExpression) (args []*ast.Argument, injected bool) {
	if call == nil {
		return nil, false
	}
	left := Source(call)
	if left == nil {
		return call.Arguments, false
	}
	args = make([]*ast.Argument, 0, len(call.Arguments)+1)
	// The synthesized argument is not adopted: left keeps its real parent.
	args = append(args, &ast.Argument{Value: left, Injected: true, Token: ast.Token{Lexeme: left.TokenLiteral()}})
	args = append(args, call.Arguments...)
	return args, true
}
