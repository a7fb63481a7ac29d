package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Module provides a private registry with loan desk collectors.
var Module = fx.Provide(func() *Metrics { return New(prometheus.NewRegistry()) })

// Metrics holds all Prometheus collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FallbackServedTotal *prometheus.CounterVec
	ProbeFailuresTotal  prometheus.Counter
	ProbeAttempts       prometheus.Histogram

	LoginsTotal *prometheus.CounterVec

	SweepUpdatesTotal *prometheus.CounterVec
}

// New creates and registers all collectors in registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loandesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loandesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		FallbackServedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loandesk_fallback_served_total",
				Help: "Reads answered from the fallback data file",
			},
			[]string{"resource"},
		),
		ProbeFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "loandesk_db_probe_failures_total",
				Help: "Reachability probes that exhausted all attempts",
			},
		),
		ProbeAttempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "loandesk_db_probe_attempts",
				Help:    "Attempts needed per reachability probe",
				Buckets: prometheus.LinearBuckets(1, 1, 5),
			},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loandesk_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		SweepUpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loandesk_sweep_updates_total",
				Help: "Loan status changes applied by the overdue sweeper",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FallbackServedTotal,
		m.ProbeFailuresTotal,
		m.ProbeAttempts,
		m.LoginsTotal,
		m.SweepUpdatesTotal,
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
