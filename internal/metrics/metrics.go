// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the application's Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	authDecisions   *prometheus.CounterVec
	rateLimited     prometheus.Counter
	bookingsExpired prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the given
// registry.
func NewCollector(registry *prometheus.Registry) *Collector {
	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pousada_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		authDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_auth_decisions_total",
			Help: "Admin authorization decisions by chain method and outcome.",
		}, []string{"method", "allowed"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pousada_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		bookingsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pousada_bookings_expired_total",
			Help: "Pending bookings cancelled by the housekeeper.",
		}),
	}

	registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.authDecisions,
		c.rateLimited,
		c.bookingsExpired,
	)

	return c
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordAuthDecision records an admin authorization decision.
func (c *Collector) RecordAuthDecision(method string, allowed bool) {
	c.authDecisions.WithLabelValues(method, strconv.FormatBool(allowed)).Inc()
}

// RecordRateLimited records a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// RecordBookingsExpired records bookings cancelled by the housekeeper.
func (c *Collector) RecordBookingsExpired(count int) {
	c.bookingsExpired.Add(float64(count))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
