package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vetting module.
type Metrics struct {
	// Edit operations by outcome (staged, reverted, unchanged, rejected)
	EditOutcome *prometheus.CounterVec

	// Commits by batch kind and result
	CommitOutcome *prometheus.CounterVec

	// Records per submitted batch
	BatchSize prometheus.Histogram

	// Commit latency including the submitter round trip
	CommitLatency *prometheus.HistogramVec

	// Status transitions by action
	StatusTransitions *prometheus.CounterVec

	// Currently open review contexts
	OpenReviews prometheus.Gauge
}

// New creates a new Metrics instance with all vetting metrics registered.
func New() *Metrics {
	return &Metrics{
		EditOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetting_edit_outcomes_total",
			Help: "Edit operations by reconciliation outcome",
		}, []string{"operation", "outcome"}),

		CommitOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetting_commits_total",
			Help: "Submitted batches by kind and result",
		}, []string{"kind", "result"}), // result: "success", "failure", "blocked"

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vetting_commit_batch_size",
			Help:    "Number of nominee records per submitted batch",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		}),

		CommitLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetting_commit_duration_seconds",
			Help:    "Duration of batch commits",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),

		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetting_status_transitions_total",
			Help: "Status transitions by action",
		}, []string{"action"}),

		OpenReviews: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vetting_open_reviews",
			Help: "Review contexts currently held in memory",
		}),
	}
}

// IncrementEdit records the outcome of an edit operation.
func (m *Metrics) IncrementEdit(operation, outcome string) {
	if m != nil {
		m.EditOutcome.WithLabelValues(operation, outcome).Inc()
	}
}

// ObserveCommit records a commit attempt.
func (m *Metrics) ObserveCommit(kind, result string, records int, d time.Duration) {
	if m == nil {
		return
	}
	m.CommitOutcome.WithLabelValues(kind, result).Inc()
	m.CommitLatency.WithLabelValues(kind).Observe(d.Seconds())
	if records > 0 {
		m.BatchSize.Observe(float64(records))
	}
}

// IncrementStatusTransition records an applied status action.
func (m *Metrics) IncrementStatusTransition(action string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(action).Inc()
	}
}

// SetOpenReviews records the number of open review contexts.
func (m *Metrics) SetOpenReviews(n int) {
	if m != nil {
		m.OpenReviews.Set(float64(n))
	}
}
