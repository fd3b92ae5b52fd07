// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to settings for the HTTP server, the task store, the
// token service and the change-notification pipeline.
package config
