package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	coreerrors "pyaudit/internal/core/errors"
)

func TestWatcherFiresOnTargetChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sample.py")
	if err := os.WriteFile(target, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 1)
	w, err := New(target, 50*time.Millisecond, 100, nil, func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(target, []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if path != filepath.Clean(target) {
			t.Errorf("expected %s, got %s", target, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sample.py")
	sibling := filepath.Join(dir, "other.py")
	for _, path := range []string{target, sibling} {
		if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	changed := make(chan string, 8)
	w, err := New(target, 20*time.Millisecond, 100, nil, func(path string) {
		changed <- path
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(sibling, []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		t.Errorf("unexpected callback for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewRequiresCallback(t *testing.T) {
	if _, err := New("sample.py", time.Second, 10, nil, nil); !coreerrors.IsCode(err, coreerrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestNewRejectsBadExcludeGlob(t *testing.T) {
	_, err := New("sample.py", time.Second, 10, []string{"[bad"}, func(string) {})
	if !coreerrors.IsCode(err, coreerrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStartFailsForMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "sample.py"), time.Second, 10, nil, func(string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Start(); !coreerrors.IsCode(err, coreerrors.CodeNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
