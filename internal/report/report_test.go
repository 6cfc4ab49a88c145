package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/glob"

	"pyaudit/internal/analyzer"
	"pyaudit/internal/history"
)

func sampleReport() *analyzer.Report {
	rep := analyzer.NewReport()
	rep.UnusedVars = append(rep.UnusedVars,
		analyzer.VarFinding{Name: "_tmp", Line: 3},
		analyzer.VarFinding{Name: "count", Line: 7},
	)
	rep.UnusedImports = append(rep.UnusedImports,
		analyzer.ImportFinding{Name: "os", Line: 1},
	)
	rep.StarImports = append(rep.StarImports,
		analyzer.StarFinding{Module: "math", Line: 0},
	)
	return rep
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, analyzer.NewReport()); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"unused_vars", "unused_imports", "syntax_errors", "star_imports"} {
		list, ok := decoded[key].([]any)
		if !ok {
			t.Errorf("expected %s to be an array, got %T", key, decoded[key])
			continue
		}
		if len(list) != 0 {
			t.Errorf("expected %s empty, got %v", key, list)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, "sample.py", sampleReport()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"sample.py: 4 finding(s)", `unused variable "_tmp"`, `unused import "os"`, `wildcard import from "math"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteHistory(t *testing.T) {
	runs := []history.Run{
		{Path: "sample.py", Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), UnusedVars: 2, StarImports: 1},
		{Path: "sample.py", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), UnusedImports: 1},
	}

	var buf bytes.Buffer
	if err := WriteHistory(&buf, runs); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"recent runs:", "2026-01-02T03:04:05Z", "vars=2", "star=1", "imports=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteHistoryEmptyIsSilent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty history, got %q", buf.String())
	}
}

func TestFilterRemovesIgnoredNames(t *testing.T) {
	varIgnores := []glob.Glob{glob.MustCompile("_*")}

	filtered := Filter(sampleReport(), varIgnores, nil)
	if len(filtered.UnusedVars) != 1 || filtered.UnusedVars[0].Name != "count" {
		t.Errorf("expected only count to survive, got %v", filtered.UnusedVars)
	}
	if len(filtered.UnusedImports) != 1 {
		t.Errorf("import findings must be untouched, got %v", filtered.UnusedImports)
	}
	if len(filtered.StarImports) != 1 {
		t.Error("star imports are never filtered")
	}
}

func TestFilterNoGlobsReturnsSameReport(t *testing.T) {
	rep := sampleReport()
	if got := Filter(rep, nil, nil); got != rep {
		t.Error("expected identity when no globs are configured")
	}
}
