// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedFanoutWidth records how many accounts a single following-feed
	// request fanned out to. The feed is a deliberate full scan-and-merge,
	// so this is the primary scalability signal.
	FeedFanoutWidth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glimpse_feed_fanout_width",
		Help:    "Number of followed accounts aggregated per following-feed request",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// FeedSkippedRefs counts references dropped during feed assembly because
	// they no longer resolved (deleted profiles or posts). Skips are expected
	// data skew, not errors; the counter exists for observability.
	FeedSkippedRefs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_feed_skipped_refs_total",
		Help: "Total number of unresolvable references skipped during feed assembly",
	}, []string{"kind"})

	// RecommendationFill counts recommendation entries by where they came from.
	RecommendationFill = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_recommendation_fill_total",
		Help: "Total recommendation entries served by candidate source",
	}, []string{"source"})

	// NotificationEventsTotal counts realtime events published by type.
	NotificationEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_notification_events_total",
		Help: "Total realtime notification events published by type",
	}, []string{"event_type"})

	// WebSocketConnectionsTotal is the gauge of active hub connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glimpse_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or already closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_websocket_backpressure_drops_total",
		Help: "Total messages dropped due to websocket client backpressure",
	}, []string{"reason"})
)
