// Package api handles incoming HTTP requests, request decoding and response
// formatting for TaskMate. Handlers translate HTTP concerns into calls on the
// task and user services and map service errors to status codes through
// MapErrorToStatusCode and GetSafeErrorMessage.
//
// Routing and middleware assembly live in cmd/server.
package api
