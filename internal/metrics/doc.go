// Package metrics defines the Prometheus collectors exported by the server
// and the handler that serves them on /metrics.
//
// Collectors are package-level and registered with the default registry at
// init. Callers record through the exported variables or the small helpers
// below.
//
// Metrics catalog:
//
//	taskmate_http_requests_total{method, route, status}   counter
//	taskmate_http_request_duration_seconds{method, route} histogram
//	taskmate_task_mutations_total{operation, outcome}     counter
//	taskmate_notifications_total{outcome}                 counter
//	taskmate_realtime_sessions                            gauge
//	taskmate_realtime_frames_dropped_total                counter
package metrics
