package utils

import (
	"testing"

	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    string   `json:"id" validate:"required,max=8"`
	Items []string `json:"items" validate:"min=1,unique,dive,required"`
	Kind  string   `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sample
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: sample{ID: "x", Items: []string{"a"}}},
		{name: "missing id", input: sample{Items: []string{"a"}}, wantField: "id", wantMsg: "id is required"},
		{name: "empty items", input: sample{ID: "x", Items: []string{}}, wantField: "items", wantMsg: "items must contain at least 1 items"},
		{name: "duplicate items", input: sample{ID: "x", Items: []string{"a", "a"}}, wantField: "items", wantMsg: "items must not contain duplicates"},
		{name: "bad kind", input: sample{ID: "x", Items: []string{"a"}, Kind: "c"}, wantField: "kind", wantMsg: "kind must be one of: a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			appErr := pkgerrors.GetAppError(err)
			assert.Equal(t, tt.wantMsg, appErr.Details[tt.wantField])
		})
	}
}
