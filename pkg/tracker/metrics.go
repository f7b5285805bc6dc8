package tracker

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"puzzletrack/pkg/parser"
)

// Metrics holds the tracker's prometheus instruments.
type Metrics struct {
	ResultsIngested *prometheus.CounterVec
	ParseFailures   *prometheus.CounterVec
	Unlocks         *prometheus.CounterVec
	Recomputes      prometheus.Counter
}

// NewMetrics creates and registers the tracker metrics on a registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResultsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzletrack_results_ingested_total",
			Help: "Total number of successfully parsed and stored results",
		}, []string{"game"}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzletrack_parse_failures_total",
			Help: "Total number of share-text parse failures",
		}, []string{"kind"}),
		Unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzletrack_achievement_unlocks_total",
			Help: "Total number of achievement tier unlocks",
		}, []string{"category"}),
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "puzzletrack_recompute_runs_total",
			Help: "Total number of full streak/achievement recompute passes",
		}),
	}

	reg.MustRegister(m.ResultsIngested, m.ParseFailures, m.Unlocks, m.Recomputes)
	return m
}

// failureKind maps a parse error to its metric label.
func failureKind(err error) string {
	switch {
	case errors.Is(err, parser.ErrUnknownGameFormat):
		return "unknown_format"
	case errors.Is(err, parser.ErrInvalidScore):
		return "invalid_score"
	case errors.Is(err, parser.ErrMissingPuzzleNumber):
		return "missing_puzzle_number"
	case errors.Is(err, parser.ErrUnsupportedGame):
		return "unsupported_game"
	case errors.Is(err, parser.ErrDateParse):
		return "date_parse"
	default:
		return "other"
	}
}
