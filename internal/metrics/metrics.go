package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notification outcomes.
const (
	NotificationQueued    = "queued"
	NotificationDropped   = "dropped"
	NotificationDelivered = "delivered"
	NotificationFailed    = "failed"
)

// Mutation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskmate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Task metrics
	TaskMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_task_mutations_total",
			Help: "Total number of task mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// Notification metrics
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmate_notifications_total",
			Help: "Total number of change notifications by outcome",
		},
		[]string{"outcome"},
	)

	// Realtime metrics
	RealtimeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskmate_realtime_sessions",
			Help: "Number of connected realtime sessions",
		},
	)

	RealtimeFramesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskmate_realtime_frames_dropped_total",
			Help: "Total number of frames dropped because a session's send buffer was full",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(TaskMutationsTotal)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(RealtimeSessions)
	prometheus.MustRegister(RealtimeFramesDropped)
}

// RecordTaskMutation counts one task mutation.
func RecordTaskMutation(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	TaskMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordNotification counts one notification outcome.
func RecordNotification(outcome string) {
	NotificationsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
