package handlers

import (
	"context"

	"scholargraph/application/commands"
	"scholargraph/application/commands/bus"
	"scholargraph/application/services"
	"scholargraph/domain/core/valueobjects"
)

// AddPublicationHandler handles AddPublicationCommand
type AddPublicationHandler struct {
	catalog *services.CatalogService
}

// NewAddPublicationHandler creates a new handler instance
func NewAddPublicationHandler(catalog *services.CatalogService) *AddPublicationHandler {
	return &AddPublicationHandler{catalog: catalog}
}

// Handle executes the add publication command
func (h *AddPublicationHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.AddPublicationCommand)
	if !ok {
		return unexpectedCommand(c)
	}

	cfg := h.catalog.Config()
	title, err := valueobjects.NewNameWithConfig(cmd.Title, cfg)
	if err != nil {
		return err
	}
	year, err := valueobjects.NewYear(cmd.Year, cfg.MinYear, cfg.MaxYear)
	if err != nil {
		return err
	}

	affiliations := make([]valueobjects.AffiliationID, 0, len(cmd.Affiliations))
	for _, raw := range cmd.Affiliations {
		id, err := valueobjects.NewAffiliationIDWithConfig(raw, cfg)
		if err != nil {
			return err
		}
		affiliations = append(affiliations, id)
	}

	_, err = h.catalog.AddPublication(ctx, valueobjects.PublicationID(cmd.ID), title, year, affiliations)
	return err
}

// LinkAffiliationHandler handles LinkAffiliationCommand
type LinkAffiliationHandler struct {
	catalog *services.CatalogService
}

// NewLinkAffiliationHandler creates a new handler instance
func NewLinkAffiliationHandler(catalog *services.CatalogService) *LinkAffiliationHandler {
	return &LinkAffiliationHandler{catalog: catalog}
}

// Handle executes the link command
func (h *LinkAffiliationHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.LinkAffiliationCommand)
	if !ok {
		return unexpectedCommand(c)
	}

	affID, err := valueobjects.NewAffiliationIDWithConfig(cmd.AffiliationID, h.catalog.Config())
	if err != nil {
		return err
	}
	return h.catalog.AddAffiliationToPublication(ctx, affID, valueobjects.PublicationID(cmd.PublicationID))
}

// AddReferenceHandler handles AddReferenceCommand
type AddReferenceHandler struct {
	catalog *services.CatalogService
}

// NewAddReferenceHandler creates a new handler instance
func NewAddReferenceHandler(catalog *services.CatalogService) *AddReferenceHandler {
	return &AddReferenceHandler{catalog: catalog}
}

// Handle executes the add reference command
func (h *AddReferenceHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.AddReferenceCommand)
	if !ok {
		return unexpectedCommand(c)
	}
	return h.catalog.AddReference(ctx,
		valueobjects.PublicationID(cmd.ChildID),
		valueobjects.PublicationID(cmd.ParentID),
	)
}

// RemovePublicationHandler handles RemovePublicationCommand
type RemovePublicationHandler struct {
	catalog *services.CatalogService
}

// NewRemovePublicationHandler creates a new handler instance
func NewRemovePublicationHandler(catalog *services.CatalogService) *RemovePublicationHandler {
	return &RemovePublicationHandler{catalog: catalog}
}

// Handle executes the remove publication command
func (h *RemovePublicationHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(commands.RemovePublicationCommand)
	if !ok {
		return unexpectedCommand(c)
	}
	return h.catalog.RemovePublication(ctx, valueobjects.PublicationID(cmd.ID))
}

// ClearAllHandler handles ClearAllCommand
type ClearAllHandler struct {
	catalog *services.CatalogService
}

// NewClearAllHandler creates a new handler instance
func NewClearAllHandler(catalog *services.CatalogService) *ClearAllHandler {
	return &ClearAllHandler{catalog: catalog}
}

// Handle executes the clear command
func (h *ClearAllHandler) Handle(ctx context.Context, c bus.Command) error {
	if _, ok := c.(commands.ClearAllCommand); !ok {
		return unexpectedCommand(c)
	}
	return h.catalog.ClearAll(ctx)
}
