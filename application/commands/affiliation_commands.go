package commands

import "scholargraph/pkg/utils"

// AddAffiliationCommand records a new affiliation
type AddAffiliationCommand struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=200"`
	X    int    `json:"x" validate:"min=-1000000000,max=1000000000"`
	Y    int    `json:"y" validate:"min=-1000000000,max=1000000000"`
}

// Validate validates the command
func (cmd AddAffiliationCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// ChangeAffiliationCoordCommand moves an affiliation
type ChangeAffiliationCoordCommand struct {
	ID string `json:"id" validate:"required,max=64"`
	X  int    `json:"x" validate:"min=-1000000000,max=1000000000"`
	Y  int    `json:"y" validate:"min=-1000000000,max=1000000000"`
}

// Validate validates the command
func (cmd ChangeAffiliationCoordCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// RemoveAffiliationCommand deletes an affiliation and its connections
type RemoveAffiliationCommand struct {
	ID string `json:"id" validate:"required,max=64"`
}

// Validate validates the command
func (cmd RemoveAffiliationCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}
