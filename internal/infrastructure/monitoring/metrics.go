// Package monitoring provides Prometheus metrics for the HTTP API.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	recipesCreated  prometheus.Counter
	recipesDeleted  prometheus.Counter
	aiGenerations   *prometheus.CounterVec
	activeStreams   prometheus.Gauge
}

// NewMetrics creates and registers the application collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "reciperack",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "reciperack",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		recipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reciperack",
			Name:      "recipes_created_total",
			Help:      "Total recipes created",
		}),
		recipesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reciperack",
			Name:      "recipes_deleted_total",
			Help:      "Total recipes deleted",
		}),
		aiGenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "reciperack",
				Name:      "ai_generations_total",
				Help:      "Total AI generation requests by outcome",
			},
			[]string{"outcome"},
		),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reciperack",
			Name:      "active_recipe_streams",
			Help:      "Currently connected recipe stream subscribers",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.recipesCreated,
		m.recipesDeleted,
		m.aiGenerations,
		m.activeStreams,
	)

	return m
}

// Handler returns the /metrics endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecipeCreated increments the created-recipes counter
func (m *Metrics) RecipeCreated() { m.recipesCreated.Inc() }

// RecipeDeleted increments the deleted-recipes counter
func (m *Metrics) RecipeDeleted() { m.recipesDeleted.Inc() }

// AIGeneration records a generation attempt outcome ("success" or "error")
func (m *Metrics) AIGeneration(outcome string) {
	m.aiGenerations.WithLabelValues(outcome).Inc()
}

// StreamOpened increments the active stream gauge
func (m *Metrics) StreamOpened() { m.activeStreams.Inc() }

// StreamClosed decrements the active stream gauge
func (m *Metrics) StreamClosed() { m.activeStreams.Dec() }
