package handlers

import (
	"context"
	"fmt"

	"scholargraph/application/commands"
	"scholargraph/application/commands/bus"
	"scholargraph/application/services"
	"scholargraph/domain/core/valueobjects"
	pkgerrors "scholargraph/pkg/errors"
)

// AddAffiliationHandler handles AddAffiliationCommand
type AddAffiliationHandler struct {
	catalog *services.CatalogService
}

// NewAddAffiliationHandler creates a new handler instance
func NewAddAffiliationHandler(catalog *services.CatalogService) *AddAffiliationHandler {
	return &AddAffiliationHandler{catalog: catalog}
}

// Handle executes the add affiliation command
func (h *AddAffiliationHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.AddAffiliationCommand)
	if !ok {
		return unexpectedCommand(c)
	}

	cfg := h.catalog.Config()
	id, err := valueobjects.NewAffiliationIDWithConfig(cmd.ID, cfg)
	if err != nil {
		return err
	}
	name, err := valueobjects.NewNameWithConfig(cmd.Name, cfg)
	if err != nil {
		return err
	}
	coord, err := valueobjects.NewCoordWithConfig(cmd.X, cmd.Y, cfg)
	if err != nil {
		return err
	}

	_, err = h.catalog.AddAffiliation(ctx, id, name, coord)
	return err
}

// ChangeAffiliationCoordHandler handles ChangeAffiliationCoordCommand
type ChangeAffiliationCoordHandler struct {
	catalog *services.CatalogService
}

// NewChangeAffiliationCoordHandler creates a new handler instance
func NewChangeAffiliationCoordHandler(catalog *services.CatalogService) *ChangeAffiliationCoordHandler {
	return &ChangeAffiliationCoordHandler{catalog: catalog}
}

// Handle executes the change coordinate command
func (h *ChangeAffiliationCoordHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.ChangeAffiliationCoordCommand)
	if !ok {
		return unexpectedCommand(c)
	}

	cfg := h.catalog.Config()
	id, err := valueobjects.NewAffiliationIDWithConfig(cmd.ID, cfg)
	if err != nil {
		return err
	}
	coord, err := valueobjects.NewCoordWithConfig(cmd.X, cmd.Y, cfg)
	if err != nil {
		return err
	}

	_, err = h.catalog.ChangeAffiliationCoord(ctx, id, coord)
	return err
}

// RemoveAffiliationHandler handles RemoveAffiliationCommand
type RemoveAffiliationHandler struct {
	catalog *services.CatalogService
}

// NewRemoveAffiliationHandler creates a new handler instance
func NewRemoveAffiliationHandler(catalog *services.CatalogService) *RemoveAffiliationHandler {
	return &RemoveAffiliationHandler{catalog: catalog}
}

// Handle executes the remove affiliation command
func (h *RemoveAffiliationHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.RemoveAffiliationCommand)
	if !ok {
		return unexpectedCommand(c)
	}

	id, err := valueobjects.NewAffiliationIDWithConfig(cmd.ID, h.catalog.Config())
	if err != nil {
		return err
	}
	return h.catalog.RemoveAffiliation(ctx, id)
}

func unexpectedCommand(c bus.Command) error {
	return pkgerrors.NewInternalError(fmt.Sprintf("unexpected command type %T", c))
}
