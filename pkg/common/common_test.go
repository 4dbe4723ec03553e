package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		params   PaginationParams
		want     []int
		wantNext bool
		wantPrev bool
	}{
		{name: "first page", params: PaginationParams{Page: 1, PageSize: 3}, want: []int{1, 2, 3}, wantNext: true},
		{name: "last partial page", params: PaginationParams{Page: 3, PageSize: 3}, want: []int{7}, wantPrev: true},
		{name: "past the end", params: PaginationParams{Page: 9, PageSize: 3}, want: []int{}, wantPrev: true},
		{name: "whole list", params: PaginationParams{Page: 1, PageSize: 10}, want: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, meta := Paginate(items, tt.params)
			assert.Equal(t, tt.want, page)
			assert.Equal(t, len(items), meta.Total)
			assert.Equal(t, tt.wantNext, meta.HasNext)
			assert.Equal(t, tt.wantPrev, meta.HasPrev)
		})
	}
}

func TestExtractPaginationParams(t *testing.T) {
	tests := []struct {
		query   string
		want    PaginationParams
		present bool
		wantErr bool
	}{
		{query: "", present: false},
		{query: "page=2", want: PaginationParams{Page: 2, PageSize: DefaultPageSize}, present: true},
		{query: "page_size=100000", want: PaginationParams{Page: 1, PageSize: MaxPageSize}, present: true},
		{query: "page=0", wantErr: true},
		{query: "page_size=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items?"+tt.query, nil)
			params, present, err := ExtractPaginationParams(r)
			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, present)
			if tt.present {
				assert.Equal(t, tt.want, params)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"x"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := ParseJSONBody(httptest.NewRecorder(), r, &p)
			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", p.Name)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"n": 1.0}, body["data"])
}
