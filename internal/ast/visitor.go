package ast

// Visitor is implemented by anything that walks the tree node by node.
type Visitor interface {
	VisitIdentifier(n *Identifier)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitVerbatim(n *Verbatim)
	VisitArgument(n *Argument)
	VisitCallExpression(n *CallExpression)
	VisitInfixExpression(n *InfixExpression)
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Argument:
		var out []Node
		if v.Name != nil {
			out = append(out, v.Name)
		}
		if v.Value != nil {
			out = append(out, v.Value)
		}
		return out
	case *CallExpression:
		out := make([]Node, 0, len(v.Arguments)+1)
		if v.Function != nil {
			out = append(out, v.Function)
		}
		for _, arg := range v.Arguments {
			if arg != nil {
				out = append(out, arg)
			}
		}
		return out
	case *InfixExpression:
		var out []Node
		if v.Left != nil {
			out = append(out, v.Left)
		}
		if v.Right != nil {
			out = append(out, v.Right)
		}
		return out
	}
	return nil
}

// Inspect traverses the tree depth-first, calling f for every node.
// Children of a node are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Relink repairs parent pointers below root, e.g. after a tree was assembled
// from nodes built in another order.
func Relink(root Node) {
	Inspect(root, func(n Node) bool {
		for _, child := range Children(n) {
			child.setParent(n)
		}
		return true
	})
}

// PathAt returns the chain of nodes from root down to the innermost node
// whose span contains offset. Nodes with an empty span are skipped.
func PathAt(root Node, offset int) []Node {
	var path []Node
	node := root
	for node != nil && !isNilNode(node) {
		sp := node.Span()
		if sp.End <= sp.Start || !sp.Contains(offset) {
			break
		}
		path = append(path, node)
		var next Node
		for _, child := range Children(node) {
			csp := child.Span()
			if csp.End > csp.Start && csp.Contains(offset) {
				next = child
				break
			}
		}
		node = next
	}
	return path
}

// EnclosingCall returns the innermost call expression among the ancestors of
// n, including n itself.
func EnclosingCall(n Node) *CallExpression {
	for n != nil && !isNilNode(n) {
		if call, ok := n.(*CallExpression); ok {
			return call
		}
		n = n.Parent()
	}
	return nil
}
