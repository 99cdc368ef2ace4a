package bomtree

import (
	"strings"

	"planctl/internal/models"
)

// FlatFilter filters the server-aggregated requirement list by a free-text
// query. The last result is memoized so repeated renders with an unchanged
// query do not re-scan the list.
type FlatFilter struct {
	list []models.FlatRequirement

	lastQuery  string
	lastResult []models.FlatRequirement
	haveResult bool
}

// NewFlatFilter wraps one flat requirement list. The list is treated as
// immutable for the lifetime of the filter.
func NewFlatFilter(list []models.FlatRequirement) *FlatFilter {
	return &FlatFilter{list: list}
}

// Filter returns the rows whose name or sku contains query, matched
// case-insensitively. An empty query returns the full list unchanged. The
// result preserves input order and is always a subset of the input.
func (f *FlatFilter) Filter(query string) []models.FlatRequirement {
	if f.haveResult && query == f.lastQuery {
		return f.lastResult
	}

	result := f.list
	if query != "" {
		q := strings.ToLower(query)
		result = make([]models.FlatRequirement, 0, len(f.list))
		for _, row := range f.list {
			if strings.Contains(strings.ToLower(row.Name), q) ||
				strings.Contains(strings.ToLower(row.SKU), q) {
				result = append(result, row)
			}
		}
	}

	f.lastQuery = query
	f.lastResult = result
	f.haveResult = true
	return result
}
