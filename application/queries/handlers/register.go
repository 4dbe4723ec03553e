package handlers

import (
	"scholargraph/application/queries"
	"scholargraph/application/queries/bus"
	"scholargraph/application/services"
)

// RegisterAll wires every catalog query to its handler
func RegisterAll(queryBus *bus.QueryBus, catalog *services.CatalogService) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.GetAffiliationQuery{}, NewGetAffiliationHandler(catalog)},
		{queries.ListAffiliationsQuery{}, NewListAffiliationsHandler(catalog)},
		{queries.FindAffiliationAtQuery{}, NewFindAffiliationAtHandler(catalog)},
		{queries.NearestAffiliationsQuery{}, NewNearestAffiliationsHandler(catalog)},
		{queries.AffiliationPublicationsQuery{}, NewAffiliationPublicationsHandler(catalog)},
		{queries.ConnectionsQuery{}, NewConnectionsHandler(catalog)},
		{queries.FindPathQuery{}, NewFindPathHandler(catalog)},
		{queries.StatsQuery{}, NewStatsHandler(catalog)},
		{queries.GetPublicationQuery{}, NewGetPublicationHandler(catalog)},
		{queries.ListPublicationsQuery{}, NewListPublicationsHandler(catalog)},
		{queries.ReferencesQuery{}, NewReferencesHandler(catalog)},
		{queries.CommonParentQuery{}, NewCommonParentHandler(catalog)},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
