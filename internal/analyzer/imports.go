package analyzer

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyaudit/internal/parser"
)

type importRecord struct {
	name string // qualified: "os.path", "math.pi", or bare alias
	line int
}

// importTracker correlates import declarations with later identifier and
// attribute-chain usage. An import counts as used when the root segment of
// its qualified name appears in the read set; `import os.path` is judged
// used by any `os.…` read. That can under-report unused dotted imports and
// is kept on purpose.
type importTracker struct {
	records []importRecord
	seen    map[importRecord]struct{}
	stars   []string
	starSet map[string]struct{}
	reads   map[string]struct{}
}

func newImportTracker() *importTracker {
	return &importTracker{
		seen:    make(map[importRecord]struct{}),
		starSet: make(map[string]struct{}),
		reads:   make(map[string]struct{}),
	}
}

func (t *importTracker) record(name string, line int) {
	rec := importRecord{name: name, line: line}
	if _, dup := t.seen[rec]; dup {
		return
	}
	t.seen[rec] = struct{}{}
	t.records = append(t.records, rec)
}

func (t *importTracker) recordStar(module string) {
	if _, dup := t.starSet[module]; dup {
		return
	}
	t.starSet[module] = struct{}{}
	t.stars = append(t.stars, module)
}

func (t *importTracker) markRead(name string) {
	t.reads[name] = struct{}{}
}

func (t *importTracker) run(tree *parser.Tree) {
	parser.Walk(tree.Root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			t.collectImport(tree, n)
			return false
		case "import_from_statement":
			t.collectFromImport(tree, n)
			return false
		case "attribute":
			// Unwind a.b.c to its innermost base identifier; only the base
			// counts as usage. Chains rooted in calls or subscripts have no
			// base identifier and contribute nothing here.
			base := n
			for base.Kind() == "attribute" {
				object := base.ChildByFieldName("object")
				if object == nil {
					break
				}
				base = object
			}
			if base.Kind() == "identifier" {
				t.markRead(tree.Text(base))
			}
		case "identifier":
			if isReadContext(n) {
				t.markRead(tree.Text(n))
			}
		}
		return true
	}, nil)
}

// collectImport records `import a.b` style statements. The module path is
// recorded even when an alias is present, mirroring how the declaration is
// written rather than how it is bound.
func (t *importTracker) collectImport(tree *parser.Tree, n *sitter.Node) {
	line := parser.Line(n)
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			t.record(tree.Text(child), line)
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				t.record(tree.Text(name), line)
			}
		}
	}
}

// collectFromImport records `from m import x` as "m.x", wildcard imports
// into the star set, and relative imports under their trailing module name
// ("x" alone when no module remains).
func (t *importTracker) collectFromImport(tree *parser.Tree, n *sitter.Node) {
	line := parser.Line(n)

	module := ""
	moduleNode := n.ChildByFieldName("module_name")
	if moduleNode != nil {
		if moduleNode.Kind() == "relative_import" {
			module = strings.TrimLeft(tree.Text(moduleNode), ".")
		} else {
			module = tree.Text(moduleNode)
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if moduleNode != nil && sameNode(child, moduleNode) {
			continue
		}
		switch child.Kind() {
		case "wildcard_import":
			t.recordStar(module)
		case "dotted_name", "identifier":
			t.record(qualify(module, tree.Text(child)), line)
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				t.record(qualify(module, tree.Text(name)), line)
			}
		}
	}
}

func qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

// rootSegment returns the first dot-separated component of a qualified name.
func rootSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

func (t *importTracker) unused() []ImportFinding {
	findings := make([]ImportFinding, 0)
	for _, rec := range t.records {
		if _, used := t.reads[rootSegment(rec.name)]; !used {
			findings = append(findings, ImportFinding{Name: rec.name, Line: rec.line})
		}
	}
	return findings
}

// starImports surfaces wildcard imports as their own finding category; they
// are never matched against the read set.
func (t *importTracker) starImports() []StarFinding {
	findings := make([]StarFinding, 0)
	for _, module := range t.stars {
		findings = append(findings, StarFinding{Module: module, Line: 0})
	}
	return findings
}
