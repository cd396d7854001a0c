package metrics

import (
	"log"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "similar_trace"

// Metrics holds the Prometheus collectors for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Panel renders by resulting state (no_trace, issue_list, empty, error)
	PanelRenders *prometheus.CounterVec

	// Upstream issue search latency
	UpstreamLatency *prometheus.HistogramVec

	// Upstream failures by status code ("network" when no response)
	UpstreamFailures *prometheus.CounterVec

	// Issues returned per upstream page
	IssuesReturned prometheus.Histogram
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	m := &Metrics{
		PanelRenders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "panel",
			Name:      "renders_total",
			Help:      "Similar-by-trace panel renders by state",
		}, []string{"state"}),
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Issue search request latency in seconds",
		}, []string{"outcome"}),
		UpstreamFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "failures_total",
			Help:      "Total failed issue search requests",
		}, []string{"status_code"}),
		IssuesReturned: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "issues_returned",
			Help:      "Number of issues returned per search page",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10, 25, 100},
		}),
	}

	log.Printf("[Metrics] collectors registered under namespace %q", namespace)
	return m
}

// PanelRendered counts one render in the given state.
func (m *Metrics) PanelRendered(state string) {
	if m == nil {
		return
	}
	m.PanelRenders.WithLabelValues(state).Inc()
}

// UpstreamDone records one upstream call. statusCode is 0 when no response
// was received.
func (m *Metrics) UpstreamDone(d time.Duration, statusCode int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		code := "network"
		if statusCode != 0 {
			code = strconv.Itoa(statusCode)
		}
		m.UpstreamFailures.WithLabelValues(code).Inc()
	}
	m.UpstreamLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// IssuesFetched records the size of one result page.
func (m *Metrics) IssuesFetched(n int) {
	if m == nil {
		return
	}
	m.IssuesReturned.Observe(float64(n))
}
