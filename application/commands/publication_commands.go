package commands

import "scholargraph/pkg/utils"

// AddPublicationCommand records a publication and its co-authoring affiliations
type AddPublicationCommand struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title" validate:"required,max=200"`
	Year         int      `json:"year" validate:"gte=0,lte=9999"`
	Affiliations []string `json:"affiliations" validate:"max=256,unique,dive,required,max=64"`
}

// Validate validates the command
func (cmd AddPublicationCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// LinkAffiliationCommand adds an affiliation to an existing publication
type LinkAffiliationCommand struct {
	PublicationID uint64 `json:"publication_id"`
	AffiliationID string `json:"affiliation_id" validate:"required,max=64"`
}

// Validate validates the command
func (cmd LinkAffiliationCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// AddReferenceCommand makes one publication reference another
type AddReferenceCommand struct {
	ChildID  uint64 `json:"child_id"`
	ParentID uint64 `json:"parent_id"`
}

// Validate validates the command
func (cmd AddReferenceCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// RemovePublicationCommand deletes a publication
type RemovePublicationCommand struct {
	ID uint64 `json:"id"`
}

// Validate validates the command
func (cmd RemovePublicationCommand) Validate() error {
	return nil
}

// ClearAllCommand drops every record
type ClearAllCommand struct{}

// Validate validates the command
func (cmd ClearAllCommand) Validate() error {
	return nil
}
