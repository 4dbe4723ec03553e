package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"scholargraph/application/ports"
	"scholargraph/domain/events"

	"go.uber.org/zap"
)

var _ ports.EventBus = (*EventBus)(nil)

// EventBus delivers events synchronously to subscribed handlers, in priority
// order, on the publisher's goroutine. Handlers may publish further events.
type EventBus struct {
	handlers map[string][]ports.EventHandler
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewEventBus creates a new in-process event bus
func NewEventBus(logger *zap.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]ports.EventHandler),
		logger:   logger,
	}
}

// Subscribe adds a handler for specific event types
func (b *EventBus) Subscribe(eventTypes []string, handler ports.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		if eventType == "" {
			return fmt.Errorf("event type cannot be empty")
		}
		if !handler.SupportsEvent(eventType) {
			return fmt.Errorf("handler %s does not support event type %s", handler.Name(), eventType)
		}

		handlers := append(b.handlers[eventType], handler)
		slices.SortStableFunc(handlers, func(x, y ports.EventHandler) int {
			return x.Priority() - y.Priority()
		})
		b.handlers[eventType] = handlers

		b.logger.Debug("Subscribed event handler",
			zap.String("handler", handler.Name()),
			zap.String("eventType", eventType),
			zap.Int("priority", handler.Priority()),
		)
	}

	return nil
}

// Unsubscribe removes a handler from specific event types
func (b *EventBus) Unsubscribe(eventTypes []string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		filtered := slices.DeleteFunc(slices.Clone(b.handlers[eventType]), func(h ports.EventHandler) bool {
			return h == handler
		})
		if len(filtered) > 0 {
			b.handlers[eventType] = filtered
		} else {
			delete(b.handlers, eventType)
		}
	}
}

// Publish sends an event to every handler subscribed to its type. Every
// handler runs even when an earlier one fails; the failures are joined.
func (b *EventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	eventType := event.GetEventType()

	// copied so handlers run without the lock and may publish in turn
	b.mu.RLock()
	handlers := slices.Clone(b.handlers[eventType])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("No handlers registered for event type",
			zap.String("eventType", eventType),
		)
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		start := time.Now()
		err := handler.Handle(ctx, event)
		duration := time.Since(start)

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", handler.Name(), err))
			b.logger.Error("Event handler failed",
				zap.String("handler", handler.Name()),
				zap.String("eventType", eventType),
				zap.String("aggregateID", event.GetAggregateID()),
				zap.Error(err),
				zap.Duration("duration", duration),
			)
			continue
		}

		b.logger.Debug("Event handler succeeded",
			zap.String("handler", handler.Name()),
			zap.String("eventType", eventType),
			zap.Duration("duration", duration),
		)
	}

	return errors.Join(errs...)
}

// PublishBatch publishes events in order and joins the failures
func (b *EventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	var errs []error
	for _, event := range batch {
		if err := b.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		b.logger.Warn("Batch publish completed with errors",
			zap.Int("total", len(batch)),
			zap.Int("failed", len(errs)),
		)
	}
	return errors.Join(errs...)
}

// HandlerCount returns how many handlers are subscribed to an event type
func (b *EventBus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.handlers[eventType])
}
