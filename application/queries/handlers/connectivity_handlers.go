package handlers

import (
	"context"

	"scholargraph/application/queries"
	"scholargraph/application/queries/bus"
	"scholargraph/application/services"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/domain/pathfinding"
)

// ConnectionsHandler handles ConnectionsQuery
type ConnectionsHandler struct {
	catalog *services.CatalogService
}

// NewConnectionsHandler creates a new handler instance
func NewConnectionsHandler(catalog *services.CatalogService) *ConnectionsHandler {
	return &ConnectionsHandler{catalog: catalog}
}

// Handle executes the query
func (h *ConnectionsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.ConnectionsQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	if query.AffiliationID == "" {
		conns := h.catalog.AllConnections(ctx)
		return queries.ConnectionsView{Count: len(conns), Connections: conns}, nil
	}

	// an id that can never be stored is unknown, and unknown ids have no connections
	id, err := valueobjects.NewAffiliationIDWithConfig(query.AffiliationID, h.catalog.Config())
	if err != nil {
		return queries.ConnectionsView{
			AffiliationID: query.AffiliationID,
			Connections:   []valueobjects.Connection{},
		}, nil
	}

	conns := h.catalog.ConnectionsOf(ctx, id)
	return queries.ConnectionsView{
		AffiliationID: id.String(),
		Count:         len(conns),
		Connections:   conns,
	}, nil
}

// FindPathHandler handles FindPathQuery
type FindPathHandler struct {
	catalog *services.CatalogService
}

// NewFindPathHandler creates a new handler instance
func NewFindPathHandler(catalog *services.CatalogService) *FindPathHandler {
	return &FindPathHandler{catalog: catalog}
}

// Handle executes the query. Unknown endpoints, including ids that fail
// validation, give an empty path rather than an error.
func (h *FindPathHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.FindPathQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	kind, err := pathfinding.ParseKind(query.Kind)
	if err != nil {
		return nil, err
	}
	cfg := h.catalog.Config()
	from, fromErr := valueobjects.NewAffiliationIDWithConfig(query.From, cfg)
	to, toErr := valueobjects.NewAffiliationIDWithConfig(query.To, cfg)
	if fromErr != nil || toErr != nil {
		return queries.NewPathView(string(kind), query.From, query.To, nil), nil
	}

	result, err := h.catalog.FindPath(ctx, kind, from, to)
	if err != nil {
		return nil, err
	}
	return queries.NewPathView(string(kind), from.String(), to.String(), result), nil
}

// StatsHandler handles StatsQuery
type StatsHandler struct {
	catalog *services.CatalogService
}

// NewStatsHandler creates a new handler instance
func NewStatsHandler(catalog *services.CatalogService) *StatsHandler {
	return &StatsHandler{catalog: catalog}
}

// Handle executes the query
func (h *StatsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	if _, ok := q.(queries.StatsQuery); !ok {
		return nil, unexpectedQuery(q)
	}

	affiliations, err := h.catalog.AffiliationCount(ctx)
	if err != nil {
		return nil, err
	}
	publications, err := h.catalog.PublicationCount(ctx)
	if err != nil {
		return nil, err
	}
	return queries.StatsView{
		Affiliations:          affiliations,
		Publications:          publications,
		Connections:           h.catalog.ConnectionCount(ctx),
		ConnectedAffiliations: h.catalog.ConnectedAffiliationCount(ctx),
	}, nil
}
