package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// EnterFunc is called before a node's children are visited. Returning false
// skips the subtree; the matching LeaveFunc is not called for skipped nodes.
type EnterFunc func(node *sitter.Node) bool

// LeaveFunc is called after a node's children have been visited.
type LeaveFunc func(node *sitter.Node)

type walkItem struct {
	node    *sitter.Node
	entered bool
}

// Walk performs a pre/post-order traversal with an explicit stack so that
// pathologically nested input cannot overflow the Go stack. leave may be nil.
func Walk(root *sitter.Node, enter EnterFunc, leave LeaveFunc) {
	if root == nil {
		return
	}

	stack := []walkItem{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.entered {
			node := top.node
			stack = stack[:len(stack)-1]
			if leave != nil {
				leave(node)
			}
			continue
		}

		top.entered = true
		node := top.node
		if !enter(node) {
			stack = stack[:len(stack)-1]
			continue
		}

		// Push children reversed so they pop in source order.
		for i := node.ChildCount(); i > 0; i-- {
			stack = append(stack, walkItem{node: node.Child(i - 1)})
		}
	}
}
