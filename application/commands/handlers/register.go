package handlers

import (
	"scholargraph/application/commands"
	"scholargraph/application/commands/bus"
	"scholargraph/application/services"
)

// RegisterAll wires every catalog command to its handler
func RegisterAll(commandBus *bus.CommandBus, catalog *services.CatalogService) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.AddAffiliationCommand{}, NewAddAffiliationHandler(catalog)},
		{commands.ChangeAffiliationCoordCommand{}, NewChangeAffiliationCoordHandler(catalog)},
		{commands.RemoveAffiliationCommand{}, NewRemoveAffiliationHandler(catalog)},
		{commands.AddPublicationCommand{}, NewAddPublicationHandler(catalog)},
		{commands.LinkAffiliationCommand{}, NewLinkAffiliationHandler(catalog)},
		{commands.AddReferenceCommand{}, NewAddReferenceHandler(catalog)},
		{commands.RemovePublicationCommand{}, NewRemovePublicationHandler(catalog)},
		{commands.ClearAllCommand{}, NewClearAllHandler(catalog)},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
