// Package history persists per-run finding counts so that repeated audits of
// a file can be compared over time. The store is optional; the analyzer
// itself holds no state between calls.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pyaudit/internal/analyzer"
	coreerrors "pyaudit/internal/core/errors"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Run is one recorded analysis.
type Run struct {
	ID            string
	Path          string
	Timestamp     time.Time
	UnusedVars    int
	UnusedImports int
	SyntaxErrors  int
	StarImports   int
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, coreerrors.New(coreerrors.CodeValidation, fmt.Sprintf("history path %q is a directory, expected file", cleanPath))
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "create history directory")
		}
	}

	// busy_timeout + WAL reduce lock conflicts when watch mode records runs
	// while a reader queries.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "open history store")
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "ping history store")
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "initialize history schema")
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores the finding counts for one analysis of path.
func (s *Store) RecordRun(path string, rep *analyzer.Report) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := Run{
		ID:            uuid.NewString(),
		Path:          path,
		Timestamp:     time.Now().UTC(),
		UnusedVars:    len(rep.UnusedVars),
		UnusedImports: len(rep.UnusedImports),
		SyntaxErrors:  len(rep.SyntaxErrors),
		StarImports:   len(rep.StarImports),
	}

	_, err := s.db.Exec(`
INSERT INTO runs (id, path, ts_utc, unused_var_count, unused_import_count, syntax_error_count, star_import_count)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Path,
		run.Timestamp.Format(time.RFC3339Nano),
		run.UnusedVars,
		run.UnusedImports,
		run.SyntaxErrors,
		run.StarImports,
	)
	if err != nil {
		return Run{}, coreerrors.Wrap(err, coreerrors.CodeStorage, "record run")
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
SELECT id, path, ts_utc, unused_var_count, unused_import_count, syntax_error_count, star_import_count
FROM runs ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "query runs")
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		var ts string
		if err := rows.Scan(&run.ID, &run.Path, &ts, &run.UnusedVars, &run.UnusedImports, &run.SyntaxErrors, &run.StarImports); err != nil {
			return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "scan run")
		}
		if parsed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
			run.Timestamp = parsed
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeStorage, "iterate runs")
	}
	return runs, nil
}
