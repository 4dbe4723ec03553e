package handlers

import (
	"net/http"

	"scholargraph/application/commands"
	"scholargraph/application/commands/bus"
	"scholargraph/application/queries"
	querybus "scholargraph/application/queries/bus"
	"scholargraph/pkg/common"
	pkgerrors "scholargraph/pkg/errors"

	"go.uber.org/zap"
)

// PublicationHandler handles publication-related HTTP requests
type PublicationHandler struct {
	base
}

// NewPublicationHandler creates a new publication handler
func NewPublicationHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *PublicationHandler {
	return &PublicationHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// CreatePublicationRequest represents the request body for creating a publication
type CreatePublicationRequest struct {
	ID           *uint64  `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required,max=200"`
	Year         *int     `json:"year" validate:"required,gte=0,lte=9999"`
	Affiliations []string `json:"affiliations" validate:"max=256,unique,dive,required,max=64"`
}

// LinkAffiliationRequest represents the request body for adding an affiliation
type LinkAffiliationRequest struct {
	AffiliationID string `json:"affiliation_id" validate:"required,max=64"`
}

// SetParentRequest represents the request body for referencing a parent
type SetParentRequest struct {
	ParentID *uint64 `json:"parent_id" validate:"required"`
}

// CreatePublication handles POST /publications
func (h *PublicationHandler) CreatePublication(w http.ResponseWriter, r *http.Request) {
	var req CreatePublicationRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.AddPublicationCommand{
		ID:           *req.ID,
		Title:        req.Title,
		Year:         *req.Year,
		Affiliations: req.Affiliations,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondPublication(w, r, http.StatusCreated, *req.ID)
}

// ListPublications handles GET /publications
func (h *PublicationHandler) ListPublications(w http.ResponseWriter, r *http.Request) {
	list, err := querybus.Ask[[]queries.PublicationView](r.Context(), h.queryBus, queries.ListPublicationsQuery{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondList(h.base, w, r, list)
}

// GetPublication handles GET /publications/{id}
func (h *PublicationHandler) GetPublication(w http.ResponseWriter, r *http.Request) {
	id, err := publicationIDParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondPublication(w, r, http.StatusOK, id)
}

// DeletePublication handles DELETE /publications/{id}
func (h *PublicationHandler) DeletePublication(w http.ResponseWriter, r *http.Request) {
	id, err := publicationIDParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.commandBus.Send(r.Context(), commands.RemovePublicationCommand{ID: id}); err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondNoContent(w)
}

// LinkAffiliation handles POST /publications/{id}/affiliations
func (h *PublicationHandler) LinkAffiliation(w http.ResponseWriter, r *http.Request) {
	id, err := publicationIDParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req LinkAffiliationRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.LinkAffiliationCommand{PublicationID: id, AffiliationID: req.AffiliationID}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondPublication(w, r, http.StatusOK, id)
}

// SetParent handles PUT /publications/{id}/parent
func (h *PublicationHandler) SetParent(w http.ResponseWriter, r *http.Request) {
	id, err := publicationIDParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req SetParentRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := commands.AddReferenceCommand{ChildID: id, ParentID: *req.ParentID}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondPublication(w, r, http.StatusOK, id)
}

// References handles GET /publications/{id}/references?scope=direct|all|chain
func (h *PublicationHandler) References(w http.ResponseWriter, r *http.Request) {
	id, err := publicationIDParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = queries.ScopeDirect
	}

	view, err := querybus.Ask[queries.ReferencesView](r.Context(), h.queryBus, queries.ReferencesQuery{ID: id, Scope: scope})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// CommonParent handles GET /publications/common-parent?a=&b=
func (h *PublicationHandler) CommonParent(w http.ResponseWriter, r *http.Request) {
	a, err := requireQueryPublicationID(r, "a")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := requireQueryPublicationID(r, "b")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := querybus.Ask[queries.CommonParentView](r.Context(), h.queryBus, queries.CommonParentQuery{A: a, B: b})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

func (h *PublicationHandler) respondPublication(w http.ResponseWriter, r *http.Request, status int, id uint64) {
	view, err := querybus.Ask[queries.PublicationView](r.Context(), h.queryBus, queries.GetPublicationQuery{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, status, view)
}
