package services

import (
	"context"
	"fmt"
	"slices"

	"scholargraph/application/ports"
	"scholargraph/domain/core/aggregates"
	"scholargraph/domain/events"

	"go.uber.org/zap"
)

var _ ports.EventHandler = (*ConnectivityProjector)(nil)

// ConnectivityProjector keeps the connectivity index in step with the record
// store. It runs synchronously inside the publishing mutation and forwards
// the index's own events to the bus.
type ConnectivityProjector struct {
	index  *aggregates.ConnectivityIndex
	bus    ports.EventPublisher
	logger *zap.Logger
}

// NewConnectivityProjector creates a projector over index
func NewConnectivityProjector(index *aggregates.ConnectivityIndex, bus ports.EventPublisher, logger *zap.Logger) *ConnectivityProjector {
	return &ConnectivityProjector{
		index:  index,
		bus:    bus,
		logger: logger,
	}
}

// ConnectivityProjectorEvents lists the record events the projector consumes
func ConnectivityProjectorEvents() []string {
	return []string{
		events.TypePublicationCreated,
		events.TypeAffiliationLinked,
		events.TypeAffiliationRemoved,
		events.TypeCatalogCleared,
	}
}

// Handle applies a record event to the index
func (p *ConnectivityProjector) Handle(ctx context.Context, event events.DomainEvent) error {
	var err error
	switch e := event.(type) {
	case events.PublicationCreated:
		err = p.index.RecordAffiliations(e.PublicationID, e.Affiliations)
	case events.AffiliationLinkedToPublication:
		err = p.index.LinkAffiliation(e.PublicationID, e.AffiliationID, e.Existing)
	case events.AffiliationRemoved:
		removed := p.index.RemoveAffiliation(e.AffiliationID)
		p.logger.Debug("Affiliation disconnected",
			zap.String("affiliationID", e.AffiliationID.String()),
			zap.Int("connections", removed),
		)
	case events.CatalogCleared:
		p.index.Clear()
	default:
		return fmt.Errorf("unsupported event %T", event)
	}
	if err != nil {
		return err
	}

	changes := p.index.GetUncommittedEvents()
	p.index.MarkEventsAsCommitted()
	return p.bus.PublishBatch(ctx, changes)
}

// SupportsEvent checks if this handler supports the given event type
func (p *ConnectivityProjector) SupportsEvent(eventType string) bool {
	return slices.Contains(ConnectivityProjectorEvents(), eventType)
}

// Priority runs the projector before observers of the same events
func (p *ConnectivityProjector) Priority() int {
	return 10
}

// Name returns the handler's name for logging
func (p *ConnectivityProjector) Name() string {
	return "connectivity-projector"
}
