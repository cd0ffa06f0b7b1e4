// Package observability wires Prometheus collectors for the HTTP layer and
// the notification worker.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	NotificationsPublished prometheus.Counter
	WorkerMessagesHandled  prometheus.Counter
	WorkerMessagesFailed   prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fintrack_http_requests_total",
			Help: "Count of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fintrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		NotificationsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_notifications_published_total",
			Help: "Notifications published to the topic.",
		}),
		WorkerMessagesHandled: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_worker_messages_handled_total",
			Help: "Queue messages handled and acknowledged by the worker.",
		}),
		WorkerMessagesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_worker_messages_failed_total",
			Help: "Queue messages the worker failed to forward.",
		}),
	}
}
