package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// isReadContext reports whether an identifier node is a read (CPython Load
// context) as opposed to a binding or a bare name token. Classification only
// needs the immediate parent: store positions that nest (tuple targets,
// parameter lists) are covered by their own parent kinds, while identifiers
// under subscript or attribute bases in store position stay reads, matching
// CPython context rules (`a[i] = 1` reads both `a` and `i`).
func isReadContext(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return true
	}

	switch parent.Kind() {
	case "assignment", "augmented_assignment", "for_statement":
		return !isField(parent, "left", n)
	case "attribute":
		return !isField(parent, "attribute", n)
	case "keyword_argument":
		return !isField(parent, "name", n)
	case "function_definition", "class_definition":
		return !isField(parent, "name", n)
	case "named_expression":
		return !isField(parent, "name", n)
	case "default_parameter", "typed_default_parameter":
		return !isField(parent, "name", n)
	case "typed_parameter":
		// Parameter name is the first child; its annotation is a read.
		first := parent.Child(0)
		return first == nil || !sameNode(first, n)
	case "parameters", "lambda_parameters",
		"list_splat_pattern", "dictionary_splat_pattern",
		"pattern_list", "tuple_pattern", "list_pattern",
		"as_pattern_target",
		"global_statement", "nonlocal_statement",
		"dotted_name", "aliased_import", "relative_import":
		return false
	}
	return true
}

// isField reports whether n occupies the named field of parent.
func isField(parent *sitter.Node, field string, n *sitter.Node) bool {
	return sameNode(parent.ChildByFieldName(field), n)
}

// sameNode compares nodes by source extent; tree-sitter node handles are not
// directly comparable.
func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
