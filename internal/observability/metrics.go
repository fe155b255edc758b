package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP and domain counters exported on /metrics.
type Metrics struct {
	requests  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	purchases prometheus.Counter
	signups   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "course_marketplace_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "course_marketplace_http_errors_total",
			Help: "HTTP error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "course_marketplace_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "course_marketplace_purchases_total",
			Help: "Completed course purchases.",
		}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "course_marketplace_signups_total",
			Help: "Completed signups by role.",
		}, []string{"role"}),
	}

	reg.MustRegister(m.requests, m.errors, m.latency, m.purchases, m.signups)
	return m
}

// RecordRequest counts a finished request and observes its latency.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordPurchase counts a completed purchase.
func (m *Metrics) RecordPurchase() {
	if m == nil {
		return
	}
	m.purchases.Inc()
}

// RecordSignup counts a completed signup for role.
func (m *Metrics) RecordSignup(role string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(role).Inc()
}
