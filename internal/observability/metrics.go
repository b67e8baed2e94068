// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harbor_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationsEmitted counts emitted notification events by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harbor_notifications_emitted_total",
		Help: "Total number of notification events emitted by type",
	}, []string{"type"})

	// NotificationFailures counts notification emit failures by stage.
	// Failures are best-effort side effects and never fail the operation
	// that produced them, so the counter is the only place they surface
	// besides logs.
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harbor_notification_failures_total",
		Help: "Total number of notification delivery failures by stage",
	}, []string{"stage"})

	// WebSocketConnections is the gauge of active notification stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "harbor_websocket_connections",
		Help: "Number of active WebSocket notification connections",
	})
)
