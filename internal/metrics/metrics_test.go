package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("/api/tests/:id", "GET", 200, 5*time.Millisecond)
	m.ObserveRequest("/api/tests/:id", "GET", 200, 5*time.Millisecond)
	m.Submission("created")
	m.Refresh("failed")

	require.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/api/tests/:id", "GET", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.submissions.WithLabelValues("created")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.refreshes.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveRequest("", "GET", 404, time.Millisecond)
		m.Submission("created")
		m.Refresh("succeeded")
	})
}
