// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "refuel",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	RankingPasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "geo",
		Name:      "ranking_passes_total",
		Help:      "Total station ranking passes performed",
	})

	StaleRankingsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "geo",
		Name:      "stale_rankings_dropped_total",
		Help:      "Superseded place-source results discarded",
	})

	PlaceLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "places",
		Name:      "lookups_total",
		Help:      "Place source lookups by outcome",
	}, []string{"outcome"})

	PlaceCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "places",
		Name:      "cache_hits_total",
		Help:      "Place lookups served from the TTL cache",
	})

	LocationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "location",
		Name:      "fallbacks_total",
		Help:      "Location fixes replaced by the default coordinate",
	})

	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "orders",
		Name:      "submitted_total",
		Help:      "Orders submitted and billed",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refuel",
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "User notifications sent by kind",
	}, []string{"kind"})
)
