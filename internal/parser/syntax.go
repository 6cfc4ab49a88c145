package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SyntaxError describes the first parse failure found in a tree. Line is
// 1-based, 0 when no position could be determined.
type SyntaxError struct {
	Line    int
	Message string
}

// CheckSyntax scans the tree for ERROR or missing nodes and reports the
// first one in source order. Returns nil for a clean tree.
func CheckSyntax(root *sitter.Node) *SyntaxError {
	if root == nil {
		return &SyntaxError{Line: 0, Message: "invalid syntax"}
	}
	if !root.HasError() {
		return nil
	}

	var found *sitter.Node
	Walk(root, func(node *sitter.Node) bool {
		if found != nil {
			return false
		}
		if node.IsError() || node.IsMissing() {
			found = node
			return false
		}
		// HasError is propagated upward, so error-free subtrees can be skipped.
		return node.HasError()
	}, nil)

	if found == nil {
		return &SyntaxError{Line: 0, Message: "invalid syntax"}
	}
	return &SyntaxError{Line: Line(found), Message: "invalid syntax"}
}
