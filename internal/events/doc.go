// Package events publishes one GenerationEvent per generation call.
//
// The generation service emits events without knowing who consumes them.
// InMemoryEventEmitter fans each event out to its registered handlers on the
// caller's goroutine; LoggingHandler turns events into structured log lines.
package events
