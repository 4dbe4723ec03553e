package queries

import "scholargraph/pkg/utils"

// GetAffiliationQuery fetches one affiliation
type GetAffiliationQuery struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Validate validates the query
func (q GetAffiliationQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListAffiliationsQuery lists every affiliation. Order is id (default),
// name or distance from the origin.
type ListAffiliationsQuery struct {
	Order string `json:"order" validate:"omitempty,oneof=id name distance"`
}

// Validate validates the query
func (q ListAffiliationsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// FindAffiliationAtQuery looks up the affiliation located at a coordinate
type FindAffiliationAtQuery struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Validate validates the query
func (q FindAffiliationAtQuery) Validate() error {
	return nil
}

// NearestAffiliationsQuery lists the affiliations closest to a coordinate
type NearestAffiliationsQuery struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Validate validates the query
func (q NearestAffiliationsQuery) Validate() error {
	return nil
}

// AffiliationPublicationsQuery lists an affiliation's publications. When
// After is set only publications from that year on are returned, with their
// year.
type AffiliationPublicationsQuery struct {
	ID    string `json:"id" validate:"required,max=64"`
	After *int   `json:"after" validate:"omitempty,gte=0,lte=9999"`
}

// Validate validates the query
func (q AffiliationPublicationsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ConnectionsQuery lists the connections of one affiliation, or all
// connections when AffiliationID is empty
type ConnectionsQuery struct {
	AffiliationID string `json:"affiliation_id"`
}

// Validate validates the query
func (q ConnectionsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// FindPathQuery asks for a path between two affiliations
type FindPathQuery struct {
	Kind string `json:"kind" validate:"required,oneof=any fewest-hops least-friction shortest"`
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// Validate validates the query
func (q FindPathQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// StatsQuery summarises the catalog
type StatsQuery struct{}

// Validate validates the query
func (q StatsQuery) Validate() error {
	return nil
}
