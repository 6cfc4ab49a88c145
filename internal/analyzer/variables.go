package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"pyaudit/internal/parser"
)

// varEntry is a definition retained after its frame has been popped. Usage
// is only decided once the whole tree has been visited, so frames are never
// diffed eagerly at scope exit.
type varEntry struct {
	frame int
	name  string
	line  int
}

// scopeFrame maps locally assigned names to their most recent definition
// line. Insertion order is kept so reports are deterministic.
type scopeFrame struct {
	id    int
	order []string
	lines map[string]int
}

// varTracker correlates simple assignment targets with identifier reads.
// The read set is deliberately global: a read anywhere in the file marks a
// name used regardless of which scope defined it.
type varTracker struct {
	frames   []*scopeFrame
	retained []varEntry
	reads    map[string]struct{}
	nextID   int
}

func newVarTracker() *varTracker {
	t := &varTracker{reads: make(map[string]struct{})}
	t.pushFrame() // root frame
	return t
}

func (t *varTracker) pushFrame() {
	t.frames = append(t.frames, &scopeFrame{
		id:    t.nextID,
		lines: make(map[string]int),
	})
	t.nextID++
}

// popFrame retires the active frame, moving its entries to the retained list.
func (t *varTracker) popFrame() {
	frame := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	for _, name := range frame.order {
		t.retained = append(t.retained, varEntry{
			frame: frame.id,
			name:  name,
			line:  frame.lines[name],
		})
	}
}

// define records an assignment in the innermost frame; reassigning the same
// name in the same frame keeps only the last line.
func (t *varTracker) define(name string, line int) {
	frame := t.frames[len(t.frames)-1]
	if _, exists := frame.lines[name]; !exists {
		frame.order = append(frame.order, name)
	}
	frame.lines[name] = line
}

func (t *varTracker) markRead(name string) {
	t.reads[name] = struct{}{}
}

func (t *varTracker) run(tree *parser.Tree) {
	parser.Walk(tree.Root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			// Imported names are bindings, not reads.
			return false
		case "function_definition", "class_definition":
			t.pushFrame()
		case "assignment":
			// Annotation-only declarations (x: int) bind no value and are
			// not definitions.
			if n.ChildByFieldName("right") == nil {
				break
			}
			if left := n.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				t.define(tree.Text(left), parser.Line(n))
			}
		case "identifier":
			if isReadContext(n) {
				t.markRead(tree.Text(n))
			}
		}
		return true
	}, func(n *sitter.Node) {
		switch n.Kind() {
		case "function_definition", "class_definition":
			t.popFrame()
		}
	})

	// Retire the root frame (and any frame left by a skipped subtree).
	for len(t.frames) > 0 {
		t.popFrame()
	}
}

// unused returns every retained definition whose name never appeared in the
// global read set, in retention order.
func (t *varTracker) unused() []VarFinding {
	findings := make([]VarFinding, 0)
	for _, entry := range t.retained {
		if _, used := t.reads[entry.name]; !used {
			findings = append(findings, VarFinding{Name: entry.name, Line: entry.line})
		}
	}
	return findings
}
