// Package parser wraps the tree-sitter Python grammar behind a small
// parse-and-walk surface used by the analyzer.
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	coreerrors "pyaudit/internal/core/errors"
)

// Parser turns Python source text into a syntax tree. Safe for concurrent
// use: every Parse call constructs its own tree-sitter parser.
type Parser struct {
	lang *sitter.Language
}

// Tree owns a parsed syntax tree. Close must be called once the tree has
// been fully consumed; nodes are invalid afterwards.
type Tree struct {
	Source []byte
	inner  *sitter.Tree
}

func New() *Parser {
	return &Parser{
		lang: sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

func (p *Parser) Parse(content []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.lang); err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeParse, "set grammar")
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, coreerrors.New(coreerrors.CodeParse, "parse failed")
	}

	return &Tree{Source: content, inner: tree}, nil
}

func (t *Tree) Root() *sitter.Node {
	return t.inner.RootNode()
}

func (t *Tree) Close() {
	t.inner.Close()
}

// Text returns the source slice covered by a node.
func (t *Tree) Text(node *sitter.Node) string {
	return string(t.Source[node.StartByte():node.EndByte()])
}

// Line returns the 1-based line a node starts on.
func Line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}
