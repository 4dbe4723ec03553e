package handlers

import (
	"net/http"
	"strconv"

	"scholargraph/application/commands/bus"
	querybus "scholargraph/application/queries/bus"
	"scholargraph/domain/core/valueobjects"
	"scholargraph/pkg/common"
	pkgerrors "scholargraph/pkg/errors"
	"scholargraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// base carries what every resource handler needs
type base struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

func newBase(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errors *pkgerrors.ErrorHandler, logger *zap.Logger) base {
	return base{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	b.errors.Handle(w, r, err)
}

// decode parses and validates a JSON request body
func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v); err != nil {
		b.fail(w, r, err)
		return false
	}
	if err := utils.ValidateStruct(v); err != nil {
		b.fail(w, r, err)
		return false
	}
	return true
}

// respondList writes items, paginated when the request asks for a page
func respondList[T any](b base, w http.ResponseWriter, r *http.Request, items []T) {
	params, paginate, err := common.ExtractPaginationParams(r)
	if err != nil {
		b.fail(w, r, err)
		return
	}

	meta := &common.MetaInfo{Timestamp: utils.NowRFC3339()}
	if id, ok := common.GetRequestID(r.Context()); ok {
		meta.RequestID = id
	}
	if paginate {
		items, meta.Pagination = common.Paginate(items, params)
	}
	common.RespondWithMeta(w, http.StatusOK, items, meta)
}

func publicationIDParam(r *http.Request, name string) (uint64, error) {
	id, err := valueobjects.ParsePublicationID(chi.URLParam(r, name))
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// queryInt reads an integer query parameter; present is false when absent
func queryInt(r *http.Request, name string) (value int, present bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, pkgerrors.NewValidationError(name + " must be an integer").WithDetail(name, raw)
	}
	return value, true, nil
}

func requireQueryInt(r *http.Request, name string) (int, error) {
	value, present, err := queryInt(r, name)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, pkgerrors.NewValidationError(name + " is required")
	}
	return value, nil
}

func requireQueryPublicationID(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, pkgerrors.NewValidationError(name + " is required")
	}
	id, err := valueobjects.ParsePublicationID(raw)
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
