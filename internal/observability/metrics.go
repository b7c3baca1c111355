// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "penpal_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "penpal_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FriendRequestsTotal counts friend-request operations by outcome
	// (sent, accepted, declined, duplicate, rejected).
	FriendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "penpal_friend_requests_total",
		Help: "Total number of friend request operations by outcome",
	}, []string{"outcome"})

	// MessagesDeliveredTotal counts messages persisted and messages
	// handed to recipients via the unread listing.
	MessagesDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "penpal_messages_delivered_total",
		Help: "Total number of messages by delivery stage",
	}, []string{"stage"})

	// FriendListCacheLookups counts friend-list cache hits and misses.
	FriendListCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "penpal_friend_list_cache_lookups_total",
		Help: "Friend list cache lookups by result",
	}, []string{"result"})
)

// InitMetrics creates the Fiber Prometheus middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
