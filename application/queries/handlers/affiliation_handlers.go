package handlers

import (
	"context"
	"fmt"

	"scholargraph/application/queries"
	"scholargraph/application/queries/bus"
	"scholargraph/application/services"
	"scholargraph/domain/core/entities"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"
)

// GetAffiliationHandler handles GetAffiliationQuery
type GetAffiliationHandler struct {
	catalog *services.CatalogService
}

// NewGetAffiliationHandler creates a new handler instance
func NewGetAffiliationHandler(catalog *services.CatalogService) *GetAffiliationHandler {
	return &GetAffiliationHandler{catalog: catalog}
}

// Handle executes the query
func (h *GetAffiliationHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.GetAffiliationQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	id, err := valueobjects.NewAffiliationIDWithConfig(query.ID, h.catalog.Config())
	if err != nil {
		return nil, err
	}
	affiliation, err := h.catalog.GetAffiliation(ctx, id)
	if err != nil {
		return nil, err
	}
	return queries.NewAffiliationView(affiliation), nil
}

// ListAffiliationsHandler handles ListAffiliationsQuery
type ListAffiliationsHandler struct {
	catalog *services.CatalogService
}

// NewListAffiliationsHandler creates a new handler instance
func NewListAffiliationsHandler(catalog *services.CatalogService) *ListAffiliationsHandler {
	return &ListAffiliationsHandler{catalog: catalog}
}

// Handle executes the query
func (h *ListAffiliationsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.ListAffiliationsQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	list, err := h.catalog.ListAffiliations(ctx, services.AffiliationOrder(query.Order))
	if err != nil {
		return nil, err
	}
	return affiliationViews(list), nil
}

// FindAffiliationAtHandler handles FindAffiliationAtQuery
type FindAffiliationAtHandler struct {
	catalog *services.CatalogService
}

// NewFindAffiliationAtHandler creates a new handler instance
func NewFindAffiliationAtHandler(catalog *services.CatalogService) *FindAffiliationAtHandler {
	return &FindAffiliationAtHandler{catalog: catalog}
}

// Handle executes the query
func (h *FindAffiliationAtHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.FindAffiliationAtQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	affiliation, err := h.catalog.FindAffiliationByCoord(ctx, valueobjects.NewCoord(query.X, query.Y))
	if err != nil {
		return nil, err
	}
	return queries.NewAffiliationView(affiliation), nil
}

// NearestAffiliationsHandler handles NearestAffiliationsQuery
type NearestAffiliationsHandler struct {
	catalog *services.CatalogService
}

// NewNearestAffiliationsHandler creates a new handler instance
func NewNearestAffiliationsHandler(catalog *services.CatalogService) *NearestAffiliationsHandler {
	return &NearestAffiliationsHandler{catalog: catalog}
}

// Handle executes the query
func (h *NearestAffiliationsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.NearestAffiliationsQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	list, err := h.catalog.NearestAffiliations(ctx, valueobjects.NewCoord(query.X, query.Y))
	if err != nil {
		return nil, err
	}
	return affiliationViews(list), nil
}

// AffiliationPublicationsHandler handles AffiliationPublicationsQuery
type AffiliationPublicationsHandler struct {
	catalog *services.CatalogService
}

// NewAffiliationPublicationsHandler creates a new handler instance
func NewAffiliationPublicationsHandler(catalog *services.CatalogService) *AffiliationPublicationsHandler {
	return &AffiliationPublicationsHandler{catalog: catalog}
}

// Handle executes the query
func (h *AffiliationPublicationsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.AffiliationPublicationsQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	id, err := valueobjects.NewAffiliationIDWithConfig(query.ID, h.catalog.Config())
	if err != nil {
		return nil, err
	}

	view := queries.AffiliationPublicationsView{AffiliationID: id.String()}
	if query.After == nil {
		ids, err := h.catalog.PublicationsOf(ctx, id)
		if err != nil {
			return nil, err
		}
		view.Publications = make([]uint64, 0, len(ids))
		for _, pubID := range ids {
			view.Publications = append(view.Publications, uint64(pubID))
		}
		return view, nil
	}

	dated, err := h.catalog.PublicationsAfter(ctx, id, valueobjects.Year(*query.After))
	if err != nil {
		return nil, err
	}
	view.Dated = make([]queries.DatedPublicationView, 0, len(dated))
	for _, d := range dated {
		view.Dated = append(view.Dated, queries.DatedPublicationView{
			Year:          d.Year.Int(),
			PublicationID: uint64(d.PublicationID),
		})
	}
	return view, nil
}

func affiliationViews(list []*entities.Affiliation) []queries.AffiliationView {
	views := make([]queries.AffiliationView, 0, len(list))
	for _, a := range list {
		views = append(views, queries.NewAffiliationView(a))
	}
	return views
}

func unexpectedQuery(q bus.Query) error {
	return pkgerrors.NewInternalError(fmt.Sprintf("unexpected query type %T", q))
}
