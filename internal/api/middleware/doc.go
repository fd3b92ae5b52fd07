// Package middleware holds the HTTP middleware shared by the API routes:
// request tracing, cookie authentication, task id validation and request
// metrics.
package middleware
