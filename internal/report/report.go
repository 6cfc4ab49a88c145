// Package report renders analysis reports and applies configured ignore
// filters. The analyzer core stays untouched by presentation concerns.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gobwas/glob"

	"pyaudit/internal/analyzer"
	"pyaudit/internal/history"
)

func WriteJSON(w io.Writer, rep *analyzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteText prints a human-oriented summary, one finding per line.
func WriteText(w io.Writer, path string, rep *analyzer.Report) error {
	if _, err := fmt.Fprintf(w, "%s: %d finding(s)\n", path, rep.Total()); err != nil {
		return err
	}
	for _, f := range rep.SyntaxErrors {
		fmt.Fprintf(w, "  line %d: syntax error: %s\n", f.Line, f.Message)
	}
	for _, f := range rep.UnusedVars {
		fmt.Fprintf(w, "  line %d: unused variable %q\n", f.Line, f.Name)
	}
	for _, f := range rep.UnusedImports {
		fmt.Fprintf(w, "  line %d: unused import %q\n", f.Line, f.Name)
	}
	for _, f := range rep.StarImports {
		fmt.Fprintf(w, "  wildcard import from %q\n", f.Module)
	}
	return nil
}

// WriteHistory appends a short per-run trail to the text output, newest
// first. Writes nothing when there are no recorded runs.
func WriteHistory(w io.Writer, runs []history.Run) error {
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "recent runs:"); err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Fprintf(w, "  %s  vars=%d imports=%d syntax=%d star=%d\n",
			run.Timestamp.Format(time.RFC3339),
			run.UnusedVars, run.UnusedImports, run.SyntaxErrors, run.StarImports)
	}
	return nil
}

// Filter returns a copy of the report with findings matching an ignore glob
// removed. Syntax errors and star imports are never filtered.
func Filter(rep *analyzer.Report, varIgnores, importIgnores []glob.Glob) *analyzer.Report {
	if len(varIgnores) == 0 && len(importIgnores) == 0 {
		return rep
	}

	out := analyzer.NewReport()
	out.SyntaxErrors = append(out.SyntaxErrors, rep.SyntaxErrors...)
	out.StarImports = append(out.StarImports, rep.StarImports...)

	for _, f := range rep.UnusedVars {
		if !matchesAny(varIgnores, f.Name) {
			out.UnusedVars = append(out.UnusedVars, f)
		}
	}
	for _, f := range rep.UnusedImports {
		if !matchesAny(importIgnores, f.Name) {
			out.UnusedImports = append(out.UnusedImports, f)
		}
	}
	return out
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
