package ports

import (
	"context"

	"scholargraph/domain/events"
)

// EventHandler is the interface that all event handlers must implement
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event events.DomainEvent) error

	// SupportsEvent checks if this handler supports the given event type
	SupportsEvent(eventType string) bool

	// Priority returns the handler's priority (lower numbers = higher priority)
	Priority() int

	// Name returns the handler's name for logging
	Name() string
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus delivers published events to subscribed handlers in process
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for the given event types
	Subscribe(eventTypes []string, handler EventHandler) error

	// Unsubscribe removes a handler from the given event types
	Unsubscribe(eventTypes []string, handler EventHandler)
}
