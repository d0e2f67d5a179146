// Package pubsub delivers typed events from background goroutines to the
// Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
	// ReloadedEvent carries a freshly loaded dataset.
	ReloadedEvent EventType = "reloaded"
	// ReloadFailedEvent carries the error of a failed reload.
	ReloadFailedEvent EventType = "reload_failed"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
