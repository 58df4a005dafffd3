/*
File    : kube-interpreter/ast/walk.go
*/
package ast

// Walk performs a depth-first pre-order traversal of the tree rooted at
// root. visit is called on every node in pre-order; if it returns
// false, Walk does not descend into that node's children. This is the
// sole traversal mechanism the pipeline orchestrator uses to locate
// Class nodes (spec section 4.5).
func Walk(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, visit)
	}
}

// Classes collects every Class node in the tree rooted at root, in
// pre-order.
func Classes(root *Node) []*Node {
	var classes []*Node
	Walk(root, func(n *Node) bool {
		if n.Type == Class {
			classes = append(classes, n)
		}
		return true
	})
	return classes
}
