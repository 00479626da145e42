// Package metrics provides Prometheus metrics for the pgmaint HTTP service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing, which
// keeps call sites free of guards in tests.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authAttempts    *prometheus.CounterVec
	sessionsSwept   prometheus.Counter
	activeSessions  prometheus.Gauge
	gatherer        prometheus.Gatherer
}

// New registers the metrics on reg. Pass a fresh prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgmaint_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pgmaint_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		authAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgmaint_auth_attempts_total",
				Help: "Login attempts by principal kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		sessionsSwept: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pgmaint_sessions_swept_total",
				Help: "Expired sessions removed by the sweeper",
			},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pgmaint_sessions_active",
				Help: "Live sessions observed at the last sweep",
			},
		),
		gatherer: reg,
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusStr := strconv.Itoa(status)
	m.requestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
}

// RecordAuthAttempt records a login attempt for kind ("owner" or "tenant").
func (m *Metrics) RecordAuthAttempt(kind, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(kind, outcome).Inc()
}

// RecordSweep records one sweeper run.
func (m *Metrics) RecordSweep(removed, remaining int) {
	if m == nil {
		return
	}
	m.sessionsSwept.Add(float64(removed))
	m.activeSessions.Set(float64(remaining))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
