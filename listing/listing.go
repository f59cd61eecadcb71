// Package listing implements the search, filter and pagination used by every
// list screen. It is generic over the record type; callers say which fields
// are searchable and which are filterable.
package listing

import (
	"strings"
)

// All is the filter value that disables a filter.
const All = "all"

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Matches reports whether value passes an exact-match filter. An empty want
// or the sentinel "all" in any case always matches.
func Matches(value, want string) bool {
	if want == "" || strings.EqualFold(want, All) {
		return true
	}
	return value == want
}

// Contains reports whether any field contains query, ignoring case.
// An empty query matches everything.
func Contains(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter is one exact-match criterion.
type Filter[T any] struct {
	Want  string
	Field func(T) string
}

// Apply keeps the items matching the search query over fields and every filter.
// Input order is preserved.
func Apply[T any](items []T, search string, fields func(T) []string, filters ...Filter[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if fields != nil && !Contains(search, fields(item)...) {
			continue
		}
		if !matchesAll(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesAll[T any](item T, filters []Filter[T]) bool {
	for _, f := range filters {
		if !Matches(f.Field(item), f.Want) {
			return false
		}
	}
	return true
}

// Page is one page of a filtered list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items[(page-1)*size : page*size], bounded to the list.
// An out-of-range page yields an empty page; use ClampPage to avoid that.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	end := page * size
	start = bound(start, total)
	end = bound(end, total)
	if end < start {
		end = start
	}

	return Page[T]{
		Items:      append(make([]T, 0, end-start), items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// ClampPage brings page into [1, totalPages]. An empty list clamps to page 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func bound(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
