package commands

import (
	"strings"
	"testing"

	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr bool
	}{
		{name: "valid affiliation", cmd: AddAffiliationCommand{ID: "mit", Name: "MIT", X: -3, Y: 4}},
		{name: "affiliation without id", cmd: AddAffiliationCommand{Name: "MIT"}, wantErr: true},
		{name: "affiliation without name", cmd: AddAffiliationCommand{ID: "mit"}, wantErr: true},
		{name: "affiliation id too long", cmd: AddAffiliationCommand{ID: strings.Repeat("x", 65), Name: "X"}, wantErr: true},
		{name: "affiliation at coordinate bound", cmd: AddAffiliationCommand{ID: "edge", Name: "E", X: -1000000000, Y: 1000000000}},
		{name: "affiliation beyond coordinate bound", cmd: AddAffiliationCommand{ID: "far", Name: "F", X: 3037000500}, wantErr: true},
		{name: "move without id", cmd: ChangeAffiliationCoordCommand{X: 1}, wantErr: true},
		{name: "move beyond coordinate bound", cmd: ChangeAffiliationCoordCommand{ID: "a", Y: -1000000001}, wantErr: true},
		{name: "remove without id", cmd: RemoveAffiliationCommand{}, wantErr: true},
		{name: "valid publication", cmd: AddPublicationCommand{ID: 1, Title: "On Graphs", Year: 1999, Affiliations: []string{"a", "b"}}},
		{name: "publication without affiliations", cmd: AddPublicationCommand{ID: 1, Title: "Solo", Year: 2000}},
		{name: "publication without title", cmd: AddPublicationCommand{ID: 1, Year: 2000}, wantErr: true},
		{name: "publication year out of range", cmd: AddPublicationCommand{ID: 1, Title: "T", Year: 10000}, wantErr: true},
		{name: "duplicate affiliations", cmd: AddPublicationCommand{ID: 1, Title: "T", Affiliations: []string{"a", "a"}}, wantErr: true},
		{name: "empty affiliation in list", cmd: AddPublicationCommand{ID: 1, Title: "T", Affiliations: []string{"a", ""}}, wantErr: true},
		{name: "link without affiliation", cmd: LinkAffiliationCommand{PublicationID: 3}, wantErr: true},
		{name: "valid link", cmd: LinkAffiliationCommand{PublicationID: 3, AffiliationID: "a"}},
		{name: "reference", cmd: AddReferenceCommand{ChildID: 2, ParentID: 1}},
		{name: "remove publication", cmd: RemovePublicationCommand{ID: 2}},
		{name: "clear", cmd: ClearAllCommand{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
