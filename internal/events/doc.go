// Package events carries payload-free change signals from the task service to
// realtime delivery.
//
// The service calls Notifier.NotifyChanged after each successful mutation.
// Dispatcher implements Notifier with a bounded queue and a single goroutine
// that hands each ChangeEvent to the configured sinks. Publishing never blocks
// the caller: when the queue is full the signal is dropped and counted.
package events
