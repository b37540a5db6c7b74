// Package metrics exposes the bridge's Prometheus instrumentation on a
// dedicated registry, keeping default-registry collectors out of the scrape.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds.
	latencyBuckets = []float64{
		1, 2, 5,
		10, 25, 50,
		100, 250, 500,
		1000, 2500,
	}

	// EventsTotal counts every event handed to the dispatcher, by variant
	// and outcome (forwarded, dropped, error).
	EventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "adobe_bridge_events_total",
			Help: "Total number of events processed by the destination",
		},
		[]string{"type", "outcome"},
	)

	// DroppedEventsTotal counts dropped events by reason.
	DroppedEventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "adobe_bridge_dropped_events_total",
			Help: "Events dropped before reaching the Adobe SDK",
		},
		[]string{"reason"},
	)

	// RequestLatency observes ingest request latency in milliseconds.
	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adobe_bridge_request_latency_ms",
			Help:    "Ingest request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"path"},
	)
)

// Outcome labels for EventsTotal.
const (
	OutcomeForwarded = "forwarded"
	OutcomeDropped   = "dropped"
	OutcomeError     = "error"
)

// Handler serves the bridge registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
