// Package redis fans change events out across server instances.
//
// Publisher is an events.Sink that publishes each ChangeEvent on a Redis
// channel. Relay subscribes to the same channel and hands every event it
// receives to a local sink, normally the realtime hub. With both wired, every
// instance broadcasts every change exactly once, whichever instance handled
// the mutation.
package redis
