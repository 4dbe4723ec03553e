package services

import (
	"context"
	"time"

	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/pathfinding"
	"scholargraph/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ConnectionsOf returns the connections of an affiliation sorted by the other
// endpoint. Unknown affiliations have no connections.
func (s *CatalogService) ConnectionsOf(ctx context.Context, id valueobjects.AffiliationID) []valueobjects.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.ConnectionsOf(id)
}

// AllConnections returns every connection once in canonical orientation
func (s *CatalogService) AllConnections(ctx context.Context) []valueobjects.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.AllConnections()
}

// ConnectionCount returns the number of connections
func (s *CatalogService) ConnectionCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.ConnectionCount()
}

// ConnectedAffiliationCount returns how many affiliations have at least one connection
func (s *CatalogService) ConnectedAffiliationCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.ConnectedAffiliationCount()
}

// ValidateConnectivity checks the connectivity index invariants
func (s *CatalogService) ValidateConnectivity(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index.Validate()
}

// FindPath runs a path query against the current connectivity. An empty
// result means no path, an unknown endpoint, or source equal to target.
func (s *CatalogService) FindPath(
	ctx context.Context,
	kind pathfinding.Kind,
	source, target valueobjects.AffiliationID,
) (valueobjects.PathWithDistance, error) {
	ctx, span := s.tracer.StartSpan(ctx, "FindPath",
		attribute.String("path.kind", string(kind)),
		attribute.String("path.source", source.String()),
		attribute.String("path.target", target.String()),
	)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	result, err := s.finder(ctx).Find(kind, source, target)
	duration := time.Since(start)

	if err != nil {
		observability.RecordError(span, err)
		s.metrics.ObservePathQuery(string(kind), observability.OutcomeError, 0, duration)
		return nil, err
	}

	outcome := observability.OutcomeFound
	if len(result) == 0 {
		outcome = observability.OutcomeEmpty
	}
	s.metrics.ObservePathQuery(string(kind), outcome, len(result), duration)
	span.SetAttributes(attribute.Int("path.hops", len(result)))

	s.logger.Debug("Path query answered",
		zap.String("kind", string(kind)),
		zap.String("source", source.String()),
		zap.String("target", target.String()),
		zap.Int("hops", len(result)),
		zap.Duration("duration", duration),
	)
	return result, nil
}
