package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pyaudit_parse_seconds",
		Help:    "Time spent parsing a source unit.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pyaudit_analysis_seconds",
		Help:    "End-to-end time for one analysis call.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyaudit_analyses_total",
		Help: "Total number of analysis calls.",
	})

	SyntaxErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyaudit_syntax_errors_total",
		Help: "Total number of inputs rejected with a syntax error.",
	})

	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pyaudit_findings_total",
		Help: "Total findings reported, by category.",
	}, []string{"category"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyaudit_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherReanalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyaudit_watcher_reanalyses_total",
		Help: "Total number of re-analyses triggered by file changes.",
	})
)
