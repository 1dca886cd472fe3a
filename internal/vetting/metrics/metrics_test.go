package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementEdit("edit", "staged")
		m.ObserveCommit("data", "success", 3, time.Millisecond)
		m.IncrementStatusTransition("approve")
		m.SetOpenReviews(2)
	})
}

func TestMetricsRecord(t *testing.T) {
	m := New()

	m.IncrementEdit("toggle", "staged")
	m.ObserveCommit("data", "failure", 2, time.Millisecond)
	m.IncrementStatusTransition("reject")
	m.SetOpenReviews(4)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.EditOutcome.WithLabelValues("toggle", "staged")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CommitOutcome.WithLabelValues("data", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("reject")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.OpenReviews))
}
