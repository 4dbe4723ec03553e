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

// ConnectivityHandler serves connections, path queries and catalog-wide operations
type ConnectivityHandler struct {
	base
}

// NewConnectivityHandler creates a new connectivity handler
func NewConnectivityHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *ConnectivityHandler {
	return &ConnectivityHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// ListConnections handles GET /connections
func (h *ConnectivityHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	view, err := querybus.Ask[queries.ConnectionsView](r.Context(), h.queryBus, queries.ConnectionsQuery{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondList(h.base, w, r, view.Connections)
}

// FindPath handles GET /paths/{kind}?from=&to=
func (h *ConnectivityHandler) FindPath(w http.ResponseWriter, r *http.Request) {
	query := queries.FindPathQuery{
		Kind: chi.URLParam(r, "kind"),
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	view, err := querybus.Ask[queries.PathView](r.Context(), h.queryBus, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// Stats handles GET /stats
func (h *ConnectivityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	view, err := querybus.Ask[queries.StatsView](r.Context(), h.queryBus, queries.StatsQuery{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// ClearCatalog handles DELETE /catalog
func (h *ConnectivityHandler) ClearCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.ClearAllCommand{}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Warn("Catalog cleared")
	common.RespondNoContent(w)
}
