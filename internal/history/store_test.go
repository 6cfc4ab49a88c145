package history

import (
	"path/filepath"
	"testing"

	"pyaudit/internal/analyzer"
	coreerrors "pyaudit/internal/core/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndQueryRuns(t *testing.T) {
	store := openTestStore(t)

	rep := analyzer.NewReport()
	rep.UnusedVars = append(rep.UnusedVars, analyzer.VarFinding{Name: "x", Line: 1})
	rep.StarImports = append(rep.StarImports, analyzer.StarFinding{Module: "math", Line: 0})

	run, err := store.RecordRun("sample.py", rep)
	if err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Error("expected generated run id")
	}
	if run.UnusedVars != 1 || run.StarImports != 1 || run.UnusedImports != 0 {
		t.Errorf("unexpected counts: %+v", run)
	}

	if _, err := store.RecordRun("sample.py", analyzer.NewReport()); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Path != "sample.py" {
			t.Errorf("unexpected path %s", r.Path)
		}
		if r.Timestamp.IsZero() {
			t.Error("expected parsed timestamp")
		}
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun("sample.py", analyzer.NewReport()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); !coreerrors.IsCode(err, coreerrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); !coreerrors.IsCode(err, coreerrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
