package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API on a private registry
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	summaries *prometheus.CounterVec
	exports   *prometheus.CounterVec
	autosaves prometheus.Counter
}

// NewMetrics creates and registers the API collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_builder_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resume_builder_http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		summaries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_builder_summaries_total",
				Help: "Professional summary generations by outcome",
			},
			[]string{"outcome"},
		),
		exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_builder_exports_total",
				Help: "PDF exports by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		autosaves: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "resume_builder_autosave_requests_total",
				Help: "Total number of debounced autosave requests accepted",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument counts and times requests served by h under route
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)

		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// outcome labels a result as "ok" or by its HTTP status class
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch HTTPStatus(err) {
	case http.StatusGatewayTimeout:
		return "timeout"
	case http.StatusUnprocessableEntity:
		return "incomplete"
	case http.StatusBadGateway:
		return "provider_error"
	default:
		return "error"
	}
}
