package services

import (
	"context"
	"slices"

	"scholargraph/application/ports"
	"scholargraph/domain/core/aggregates"
	"scholargraph/domain/events"
	"scholargraph/pkg/observability"
)

var _ ports.EventHandler = (*MetricsHandler)(nil)

// MetricsHandler turns domain events into Prometheus metrics
type MetricsHandler struct {
	metrics *observability.Collector
	index   *aggregates.ConnectivityIndex
}

// NewMetricsHandler creates a metrics handler; index feeds the connection gauge
func NewMetricsHandler(metrics *observability.Collector, index *aggregates.ConnectivityIndex) *MetricsHandler {
	return &MetricsHandler{
		metrics: metrics,
		index:   index,
	}
}

// MetricsHandlerEvents lists the events the metrics handler observes
func MetricsHandlerEvents() []string {
	return []string{
		events.TypeAffiliationAdded,
		events.TypeAffiliationRemoved,
		events.TypePublicationCreated,
		events.TypePublicationRemoved,
		events.TypeCatalogCleared,
		events.TypeConnectionCreated,
		events.TypeConnectionStrengthened,
		events.TypeAffiliationDisconnected,
	}
}

// Handle records the event
func (h *MetricsHandler) Handle(ctx context.Context, event events.DomainEvent) error {
	switch event.GetEventType() {
	case events.TypeAffiliationAdded:
		h.metrics.RecordsCreated.WithLabelValues("affiliation").Inc()
	case events.TypePublicationCreated:
		h.metrics.RecordsCreated.WithLabelValues("publication").Inc()
	case events.TypeAffiliationRemoved:
		h.metrics.RecordsRemoved.WithLabelValues("affiliation").Inc()
	case events.TypePublicationRemoved:
		h.metrics.RecordsRemoved.WithLabelValues("publication").Inc()
	case events.TypeConnectionCreated, events.TypeConnectionStrengthened, events.TypeAffiliationDisconnected:
		h.metrics.ConnectionEvents.WithLabelValues(event.GetEventType()).Inc()
	}
	h.metrics.Connections.Set(float64(h.index.ConnectionCount()))
	return nil
}

// SupportsEvent checks if this handler supports the given event type
func (h *MetricsHandler) SupportsEvent(eventType string) bool {
	return slices.Contains(MetricsHandlerEvents(), eventType)
}

// Priority runs after state-changing handlers
func (h *MetricsHandler) Priority() int {
	return 100
}

// Name returns the handler's name for logging
func (h *MetricsHandler) Name() string {
	return "metrics"
}

// RegisterHandlers subscribes the projector and the metrics handler to bus
func RegisterHandlers(bus ports.EventBus, projector *ConnectivityProjector, metrics *MetricsHandler) error {
	if err := bus.Subscribe(ConnectivityProjectorEvents(), projector); err != nil {
		return err
	}
	return bus.Subscribe(MetricsHandlerEvents(), metrics)
}
