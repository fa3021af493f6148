// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector served at /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	authEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "epkadmin_auth_events_total",
		Help: "Authentication events by event and outcome.",
	}, []string{"event", "outcome"})

	importRows = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "epkadmin_epk_import_rows_total",
		Help: "Bulk import rows by result.",
	}, []string{"result"})

	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "epkadmin_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "epkadmin_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// AuthEvent counts one authentication event. Outcome is "success" or the
// failure reason.
func AuthEvent(event, outcome string) {
	authEvents.WithLabelValues(event, outcome).Inc()
}

// ImportRows counts n imported rows with result "success" or "failed".
func ImportRows(result string, n int) {
	if n <= 0 {
		return
	}
	importRows.WithLabelValues(result).Add(float64(n))
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves Registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
