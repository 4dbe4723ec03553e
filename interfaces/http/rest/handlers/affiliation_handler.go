package handlers

import (
	"net/http"

	"scholargraph/application/commands"
	"scholargraph/application/commands/bus"
	"scholargraph/application/queries"
	querybus "scholargraph/application/queries/bus"
	"scholargraph/pkg/common"
	pkgerrors "scholargraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AffiliationHandler handles affiliation-related HTTP requests
type AffiliationHandler struct {
	base
}

// NewAffiliationHandler creates a new affiliation handler
func NewAffiliationHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AffiliationHandler {
	return &AffiliationHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// CreateAffiliationRequest represents the request body for creating an affiliation
type CreateAffiliationRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=200"`
	X    *int   `json:"x" validate:"required"`
	Y    *int   `json:"y" validate:"required"`
}

// MoveAffiliationRequest represents the request body for changing coordinates
type MoveAffiliationRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

// CreateAffiliation handles POST /affiliations
func (h *AffiliationHandler) CreateAffiliation(w http.ResponseWriter, r *http.Request) {
	var req CreateAffiliationRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.AddAffiliationCommand{ID: req.ID, Name: req.Name, X: *req.X, Y: *req.Y}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := querybus.Ask[queries.AffiliationView](r.Context(), h.queryBus, queries.GetAffiliationQuery{ID: req.ID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, view)
}

// ListAffiliations handles GET /affiliations?order=id|name|distance
func (h *AffiliationHandler) ListAffiliations(w http.ResponseWriter, r *http.Request) {
	query := queries.ListAffiliationsQuery{Order: r.URL.Query().Get("order")}
	list, err := querybus.Ask[[]queries.AffiliationView](r.Context(), h.queryBus, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondList(h.base, w, r, list)
}

// GetAffiliation handles GET /affiliations/{id}
func (h *AffiliationHandler) GetAffiliation(w http.ResponseWriter, r *http.Request) {
	query := queries.GetAffiliationQuery{ID: chi.URLParam(r, "id")}
	view, err := querybus.Ask[queries.AffiliationView](r.Context(), h.queryBus, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// FindAffiliationAt handles GET /affiliations/at?x=&y=
func (h *AffiliationHandler) FindAffiliationAt(w http.ResponseWriter, r *http.Request) {
	x, y, err := coordParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := querybus.Ask[queries.AffiliationView](r.Context(), h.queryBus, queries.FindAffiliationAtQuery{X: x, Y: y})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// NearestAffiliations handles GET /affiliations/nearest?x=&y=
func (h *AffiliationHandler) NearestAffiliations(w http.ResponseWriter, r *http.Request) {
	x, y, err := coordParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	list, err := querybus.Ask[[]queries.AffiliationView](r.Context(), h.queryBus, queries.NearestAffiliationsQuery{X: x, Y: y})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, list)
}

// MoveAffiliation handles PUT /affiliations/{id}/coord
func (h *AffiliationHandler) MoveAffiliation(w http.ResponseWriter, r *http.Request) {
	var req MoveAffiliationRequest
	if !h.decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	cmd := commands.ChangeAffiliationCoordCommand{ID: id, X: *req.X, Y: *req.Y}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := querybus.Ask[queries.AffiliationView](r.Context(), h.queryBus, queries.GetAffiliationQuery{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// DeleteAffiliation handles DELETE /affiliations/{id}
func (h *AffiliationHandler) DeleteAffiliation(w http.ResponseWriter, r *http.Request) {
	cmd := commands.RemoveAffiliationCommand{ID: chi.URLParam(r, "id")}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondNoContent(w)
}

// AffiliationPublications handles GET /affiliations/{id}/publications[?after=year]
func (h *AffiliationHandler) AffiliationPublications(w http.ResponseWriter, r *http.Request) {
	query := queries.AffiliationPublicationsQuery{ID: chi.URLParam(r, "id")}
	after, present, err := queryInt(r, "after")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if present {
		query.After = &after
	}

	view, err := querybus.Ask[queries.AffiliationPublicationsView](r.Context(), h.queryBus, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// AffiliationConnections handles GET /affiliations/{id}/connections
func (h *AffiliationHandler) AffiliationConnections(w http.ResponseWriter, r *http.Request) {
	query := queries.ConnectionsQuery{AffiliationID: chi.URLParam(r, "id")}
	view, err := querybus.Ask[queries.ConnectionsView](r.Context(), h.queryBus, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

func coordParams(r *http.Request) (x, y int, err error) {
	if x, err = requireQueryInt(r, "x"); err != nil {
		return 0, 0, err
	}
	if y, err = requireQueryInt(r, "y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
