// Package metrics exposes Prometheus instrumentation for detail page
// fetches and the HTTP front-end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	detailFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineparadis_detail_fetches_total",
		Help: "Composite detail fetches by media kind and outcome",
	}, []string{"kind", "outcome"}) // outcome=loaded|network|not_found|malformed|unknown

	detailFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cineparadis_detail_fetch_duration_seconds",
		Help:    "Latency of composite detail fetches",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"kind"})

	detailFetchesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cineparadis_detail_fetches_in_flight",
		Help: "Detail fetches currently awaiting a response",
	})

	staleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineparadis_detail_stale_responses_total",
		Help: "Responses dropped because the view had moved to another title",
	}, []string{"kind"})

	tabSelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineparadis_tab_selections_total",
		Help: "Tab changes by destination tab",
	}, []string{"tab"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineparadis_http_requests_total",
		Help: "HTTP requests served by route and status code",
	}, []string{"route", "code"})
)

// Recorder reports coordinator activity to Prometheus. The zero value is
// ready to use.
type Recorder struct{}

// NewRecorder returns a Recorder backed by the default registry
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FetchStarted marks the start of a composite fetch
func (*Recorder) FetchStarted(kind string) {
	detailFetchesInFlight.Inc()
}

// FetchFinished records the outcome of a fetch that was applied to the view
func (*Recorder) FetchFinished(kind, outcome string, elapsed time.Duration) {
	detailFetchesInFlight.Dec()
	detailFetchesTotal.WithLabelValues(kind, outcome).Inc()
	detailFetchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// FetchDiscarded records a response that arrived after the view moved on
func (*Recorder) FetchDiscarded(kind string) {
	detailFetchesInFlight.Dec()
	staleResponsesTotal.WithLabelValues(kind).Inc()
}

// TabSelected counts a tab change
func (*Recorder) TabSelected(tab string) {
	tabSelectionsTotal.WithLabelValues(tab).Inc()
}

// RecordHTTPRequest counts a served HTTP request
func RecordHTTPRequest(route, code string) {
	httpRequestsTotal.WithLabelValues(route, code).Inc()
}
