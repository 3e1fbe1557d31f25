package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_editor"

// Mutation outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
)

var (
	// MutationsTotal counts document mutations by operation and outcome.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Document mutations submitted, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// HistoryNavigationTotal counts undo and redo calls that moved the history.
	HistoryNavigationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_navigation_total",
			Help:      "Undo and redo operations, by direction and whether the history moved.",
		},
		[]string{"direction", "moved"},
	)

	// ExportsTotal counts finished PDF exports by path and result.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "total",
			Help:      "PDF exports, by the path that ended the export and its result.",
		},
		[]string{"path", "result"},
	)

	// RenderDuration observes layout render latency per template.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent projecting a document into a layout.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"template"},
	)

	// ActiveSessions tracks the number of live editing sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Editing sessions currently held in memory.",
		},
	)
)

// BoolLabel renders b as a metric label value.
func BoolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
