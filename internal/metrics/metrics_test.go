package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PanelRendered("no_trace")
	m.PanelRendered("no_trace")
	m.UpstreamDone(20*time.Millisecond, 502, errors.New("bad gateway"))
	m.UpstreamDone(time.Millisecond, 0, errors.New("dial tcp: refused"))
	m.UpstreamDone(time.Millisecond, 200, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PanelRenders.WithLabelValues("no_trace")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamFailures.WithLabelValues("502")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamFailures.WithLabelValues("network")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PanelRendered("empty")
		m.UpstreamDone(time.Second, 0, nil)
		m.IssuesFetched(3)
	})
}
