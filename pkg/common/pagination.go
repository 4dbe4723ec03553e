package common

import (
	"net/http"
	"strconv"

	pkgerrors "scholargraph/pkg/errors"
)

// Page size bounds
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ExtractPaginationParams reads page and page_size from the query string.
// The boolean is false when neither is present, meaning the whole list is
// wanted.
func ExtractPaginationParams(r *http.Request) (PaginationParams, bool, error) {
	query := r.URL.Query()
	rawPage, rawSize := query.Get("page"), query.Get("page_size")
	if rawPage == "" && rawSize == "" {
		return PaginationParams{}, false, nil
	}

	params := PaginationParams{Page: 1, PageSize: DefaultPageSize}
	if rawPage != "" {
		p, err := strconv.Atoi(rawPage)
		if err != nil || p < 1 {
			return params, false, pkgerrors.NewValidationError("page must be a positive integer")
		}
		params.Page = p
	}
	if rawSize != "" {
		ps, err := strconv.Atoi(rawSize)
		if err != nil || ps < 1 {
			return params, false, pkgerrors.NewValidationError("page_size must be a positive integer")
		}
		params.PageSize = min(ps, MaxPageSize)
	}
	return params, true, nil
}

// CalculateOffset calculates the offset of the first item on the page
func (p PaginationParams) CalculateOffset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// BuildPaginationMeta builds pagination metadata
func BuildPaginationMeta(page, pageSize, total int) *PaginationInfo {
	totalPages := CalculateTotalPages(total, pageSize)

	return &PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Paginate slices items down to the requested page
func Paginate[T any](items []T, params PaginationParams) ([]T, *PaginationInfo) {
	meta := BuildPaginationMeta(params.Page, params.PageSize, len(items))

	start := min(params.CalculateOffset(), len(items))
	end := min(start+params.PageSize, len(items))
	return items[start:end], meta
}
