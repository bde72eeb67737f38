// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tenantdesk"

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SubscriptionsCreatedTotal *prometheus.CounterVec
	SubscriptionsExpiredTotal prometheus.Counter
	AccessChangesTotal        *prometheus.CounterVec
	AuthAttemptsTotal         *prometheus.CounterVec
	RateLimitedTotal          prometheus.Counter
}

// New creates the collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SubscriptionsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscriptions_created_total",
				Help:      "Subscriptions created, by source",
			},
			[]string{"source"},
		),
		SubscriptionsExpiredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscriptions_expired_total",
				Help:      "Subscriptions marked expired by the sweep",
			},
		),
		AccessChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_access_changes_total",
				Help:      "Service access grants and revocations",
			},
			[]string{"action"},
		),
		AuthAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Login attempts by method and result",
			},
			[]string{"method", "result"},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SubscriptionsCreatedTotal,
		m.SubscriptionsExpiredTotal,
		m.AccessChangesTotal,
		m.AuthAttemptsTotal,
		m.RateLimitedTotal,
	)
	return m
}

// RegisterDB exports connection pool statistics for db.
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// The recorders below accept a nil receiver so use cases can run without metrics.

func (m *Metrics) SubscriptionCreated(source string) {
	if m != nil {
		m.SubscriptionsCreatedTotal.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) SubscriptionsExpired(n int) {
	if m != nil && n > 0 {
		m.SubscriptionsExpiredTotal.Add(float64(n))
	}
}

func (m *Metrics) AccessChanged(action string) {
	if m != nil {
		m.AccessChangesTotal.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) AuthAttempt(method string, ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.AuthAttemptsTotal.WithLabelValues(method, result).Inc()
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) RateLimited() {
	if m != nil {
		m.RateLimitedTotal.Inc()
	}
}
