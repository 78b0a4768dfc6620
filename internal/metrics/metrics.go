// Package metrics holds the Prometheus instruments for search runs and the
// HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ChicagoDave/siteplanner/pkg/layout"
)

// Search run outcomes.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

// Registry holds all metrics for the application.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SearchRunsTotal     *prometheus.CounterVec
	SearchDuration      prometheus.Histogram
	ArrangementsTotal   prometheus.Counter
	LastArrangements    prometheus.Gauge
	SearchFailuresTotal *prometheus.CounterVec
	TruncatedRunsTotal  prometheus.Counter

	ReserveDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initHTTPMetrics()
	r.initSearchMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteplanner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "siteplanner_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

func (r *Registry) initSearchMetrics() {
	r.SearchRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteplanner_search_runs_total",
			Help: "Total number of arrangement searches by outcome",
		},
		[]string{"status"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "siteplanner_search_duration_seconds",
			Help:    "Duration of arrangement searches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	r.ArrangementsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "siteplanner_arrangements_total",
			Help: "Total number of valid arrangements found",
		},
	)

	r.LastArrangements = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "siteplanner_last_search_arrangements",
			Help: "Arrangements found by the most recent search",
		},
	)

	r.SearchFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteplanner_search_failures_total",
			Help: "Abandoned search branches by failure category",
		},
		[]string{"category"},
	)

	r.TruncatedRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "siteplanner_search_truncated_total",
			Help: "Searches cut short by the arrangement limit",
		},
	)

	r.ReserveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "siteplanner_reserve_duration_seconds",
			Help:    "Duration of reserve-square computation in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSearch records one search run. res may be nil when the run failed.
func (r *Registry) RecordSearch(status string, duration time.Duration, res *layout.Result) {
	r.SearchRunsTotal.WithLabelValues(status).Inc()
	r.SearchDuration.Observe(duration.Seconds())
	if res == nil {
		return
	}
	r.ArrangementsTotal.Add(float64(len(res.Arrangements)))
	r.LastArrangements.Set(float64(len(res.Arrangements)))
	for _, f := range layout.Failures {
		if n := res.Tally[f]; n > 0 {
			r.SearchFailuresTotal.WithLabelValues(string(f)).Add(float64(n))
		}
	}
	if res.Truncated {
		r.TruncatedRunsTotal.Inc()
	}
}

// RecordReserve records one batch of reserve computations.
func (r *Registry) RecordReserve(duration time.Duration) {
	r.ReserveDuration.Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
