package services

import (
	"context"
	"sync"

	"scholargraph/application/ports"
	"scholargraph/domain/config"
	"scholargraph/domain/core/aggregates"
	"scholargraph/domain/core/validators"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/events"
	"scholargraph/domain/pathfinding"
	pkgerrors "scholargraph/pkg/errors"
	"scholargraph/pkg/observability"

	"go.uber.org/zap"
)

// CatalogService owns the record store and the connectivity index and
// serialises access to both. Mutations hold the write lock for their whole
// duration, including synchronous event delivery; reads hold the read lock.
type CatalogService struct {
	mu sync.RWMutex

	affiliations ports.AffiliationRepository
	publications ports.PublicationRepository
	index        *aggregates.ConnectivityIndex
	bus          ports.EventBus
	cfg          *config.DomainConfig
	metrics      *observability.Collector
	tracer       *observability.Tracer
	logger       *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	affiliations ports.AffiliationRepository,
	publications ports.PublicationRepository,
	index *aggregates.ConnectivityIndex,
	bus ports.EventBus,
	cfg *config.DomainConfig,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *CatalogService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &CatalogService{
		affiliations: affiliations,
		publications: publications,
		index:        index,
		bus:          bus,
		cfg:          cfg,
		metrics:      metrics,
		tracer:       tracer,
		logger:       logger,
	}
}

// eventSource is anything that records uncommitted domain events
type eventSource interface {
	GetUncommittedEvents() []events.DomainEvent
	MarkEventsAsCommitted()
}

// commit drains the sources' events, then publishes them together with extra
func (s *CatalogService) commit(ctx context.Context, sources []eventSource, extra ...events.DomainEvent) error {
	var pending []events.DomainEvent
	for _, source := range sources {
		pending = append(pending, source.GetUncommittedEvents()...)
		source.MarkEventsAsCommitted()
	}
	pending = append(pending, extra...)
	if len(pending) == 0 {
		return nil
	}

	if err := s.bus.PublishBatch(ctx, pending); err != nil {
		return pkgerrors.NewInternalError("failed to deliver domain events").WithCause(err)
	}
	return nil
}

// finder builds a path finder whose directory reads the affiliation store
func (s *CatalogService) finder(ctx context.Context) *pathfinding.Finder {
	return pathfinding.NewFinder(s.index, pathfinding.DirectoryFunc(func(id valueobjects.AffiliationID) bool {
		exists, err := s.affiliations.Exists(ctx, id)
		if err != nil {
			s.logger.Warn("Affiliation lookup failed during path query",
				zap.String("affiliationID", id.String()),
				zap.Error(err),
			)
			return false
		}
		return exists
	}))
}

// referenceValidator walks the current reference tree
func (s *CatalogService) referenceValidator(ctx context.Context) (*validators.ReferenceValidator, error) {
	count, err := s.publications.Count(ctx)
	if err != nil {
		return nil, err
	}
	return validators.NewReferenceValidator(func(id valueobjects.PublicationID) (valueobjects.PublicationID, bool) {
		publication, err := s.publications.GetByID(ctx, id)
		if err != nil {
			return 0, false
		}
		return publication.Parent()
	}, count), nil
}

// Config returns the domain configuration in effect
func (s *CatalogService) Config() *config.DomainConfig {
	return s.cfg
}
