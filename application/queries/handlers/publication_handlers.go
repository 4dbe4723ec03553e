package handlers

import (
	"context"

	"scholargraph/application/queries"
	"scholargraph/application/queries/bus"
	"scholargraph/application/services"
	"scholargraph/domain/core/valueobjects"
)

// GetPublicationHandler handles GetPublicationQuery
type GetPublicationHandler struct {
	catalog *services.CatalogService
}

// NewGetPublicationHandler creates a new handler instance
func NewGetPublicationHandler(catalog *services.CatalogService) *GetPublicationHandler {
	return &GetPublicationHandler{catalog: catalog}
}

// Handle executes the query
func (h *GetPublicationHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.GetPublicationQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	publication, err := h.catalog.GetPublication(ctx, valueobjects.PublicationID(query.ID))
	if err != nil {
		return nil, err
	}
	return queries.NewPublicationView(publication), nil
}

// ListPublicationsHandler handles ListPublicationsQuery
type ListPublicationsHandler struct {
	catalog *services.CatalogService
}

// NewListPublicationsHandler creates a new handler instance
func NewListPublicationsHandler(catalog *services.CatalogService) *ListPublicationsHandler {
	return &ListPublicationsHandler{catalog: catalog}
}

// Handle executes the query
func (h *ListPublicationsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	if _, ok := q.(queries.ListPublicationsQuery); !ok {
		return nil, unexpectedQuery(q)
	}

	list, err := h.catalog.ListPublications(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]queries.PublicationView, 0, len(list))
	for _, p := range list {
		views = append(views, queries.NewPublicationView(p))
	}
	return views, nil
}

// ReferencesHandler handles ReferencesQuery
type ReferencesHandler struct {
	catalog *services.CatalogService
}

// NewReferencesHandler creates a new handler instance
func NewReferencesHandler(catalog *services.CatalogService) *ReferencesHandler {
	return &ReferencesHandler{catalog: catalog}
}

// Handle executes the query
func (h *ReferencesHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.ReferencesQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	id := valueobjects.PublicationID(query.ID)
	var (
		ids []valueobjects.PublicationID
		err error
	)
	switch query.Scope {
	case queries.ScopeDirect:
		ids, err = h.catalog.DirectReferences(ctx, id)
	case queries.ScopeAll:
		ids, err = h.catalog.AllReferences(ctx, id)
	case queries.ScopeChain:
		ids, err = h.catalog.ReferencedByChain(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	view := queries.ReferencesView{
		PublicationID: query.ID,
		Scope:         query.Scope,
		Publications:  make([]uint64, 0, len(ids)),
	}
	for _, ref := range ids {
		view.Publications = append(view.Publications, uint64(ref))
	}
	return view, nil
}

// CommonParentHandler handles CommonParentQuery
type CommonParentHandler struct {
	catalog *services.CatalogService
}

// NewCommonParentHandler creates a new handler instance
func NewCommonParentHandler(catalog *services.CatalogService) *CommonParentHandler {
	return &CommonParentHandler{catalog: catalog}
}

// Handle executes the query
func (h *CommonParentHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.CommonParentQuery)
	if !ok {
		return nil, unexpectedQuery(q)
	}

	parent, err := h.catalog.ClosestCommonParent(ctx,
		valueobjects.PublicationID(query.A),
		valueobjects.PublicationID(query.B),
	)
	if err != nil {
		return nil, err
	}
	return queries.CommonParentView{A: query.A, B: query.B, Parent: uint64(parent)}, nil
}
