// Package analyzer reports unused local variables, unused imports, wildcard
// imports, and syntax errors for a single Python translation unit.
//
// The two trackers are scope-aware but usage is not: a definition counts as
// used if its name is read anywhere in the file, even in an unrelated scope.
// That imprecision is part of the contract, not an oversight.
package analyzer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pyaudit/internal/parser"
	"pyaudit/internal/shared/observability"
)

const Version = "0.1.0"

var tracer = otel.Tracer("pyaudit/analyzer")

// Analyzer is a stateless orchestrator; every Analyze call builds fresh
// tracker state, so concurrent calls are independent.
type Analyzer struct {
	parser *parser.Parser
}

func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Analyze parses source and runs the variable and import trackers as two
// independent traversals of the same tree. On a syntax error the report
// carries only that error; partial results are never mixed in.
func (a *Analyzer) Analyze(ctx context.Context, source []byte) *Report {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "analyze")
	defer span.End()
	defer func() {
		observability.AnalysisDuration.Observe(time.Since(start).Seconds())
		observability.AnalysesTotal.Inc()
	}()

	report := NewReport()

	parseStart := time.Now()
	tree, err := a.parser.Parse(source)
	if err != nil {
		report.SyntaxErrors = append(report.SyntaxErrors, SyntaxFinding{Line: 0, Message: err.Error()})
		observability.SyntaxErrorsTotal.Inc()
		return report
	}
	defer tree.Close()
	observability.ParseDuration.Observe(time.Since(parseStart).Seconds())

	if synErr := parser.CheckSyntax(tree.Root()); synErr != nil {
		report.SyntaxErrors = append(report.SyntaxErrors, SyntaxFinding{
			Line:    synErr.Line,
			Message: synErr.Message,
		})
		observability.SyntaxErrorsTotal.Inc()
		return report
	}

	vars := newVarTracker()
	vars.run(tree)
	report.UnusedVars = vars.unused()

	imports := newImportTracker()
	imports.run(tree)
	report.UnusedImports = imports.unused()
	report.StarImports = imports.starImports()

	span.SetAttributes(
		attribute.Int("pyaudit.unused_vars", len(report.UnusedVars)),
		attribute.Int("pyaudit.unused_imports", len(report.UnusedImports)),
		attribute.Int("pyaudit.star_imports", len(report.StarImports)),
	)
	observability.FindingsTotal.WithLabelValues("unused_vars").Add(float64(len(report.UnusedVars)))
	observability.FindingsTotal.WithLabelValues("unused_imports").Add(float64(len(report.UnusedImports)))
	observability.FindingsTotal.WithLabelValues("star_imports").Add(float64(len(report.StarImports)))

	return report
}
