package queries

import "scholargraph/pkg/utils"

// Reference scopes
const (
	ScopeDirect = "direct"
	ScopeAll    = "all"
	ScopeChain  = "chain"
)

// GetPublicationQuery fetches one publication
type GetPublicationQuery struct {
	ID uint64 `json:"id"`
}

// Validate validates the query
func (q GetPublicationQuery) Validate() error {
	return nil
}

// ListPublicationsQuery lists every publication in ascending ID order
type ListPublicationsQuery struct{}

// Validate validates the query
func (q ListPublicationsQuery) Validate() error {
	return nil
}

// ReferencesQuery walks the reference tree from a publication. Scope direct
// lists the publications referencing it, all lists every descendant in
// pre-order, chain lists its ancestors nearest first.
type ReferencesQuery struct {
	ID    uint64 `json:"id"`
	Scope string `json:"scope" validate:"required,oneof=direct all chain"`
}

// Validate validates the query
func (q ReferencesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CommonParentQuery finds the closest publication both A and B descend from
type CommonParentQuery struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// Validate validates the query
func (q CommonParentQuery) Validate() error {
	return nil
}
