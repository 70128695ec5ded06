package models

import (
	"errors"
	"fmt"
)

// Filter selects a subset of the fetched projects.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterFeatured Filter = "featured"
)

var ErrUnsupportedFilter = errors.New("unsupported filter")

// ParseFilter accepts only the known filter values.
func ParseFilter(value string) (Filter, error) {
	switch Filter(value) {
	case FilterAll, FilterFeatured:
		return Filter(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFilter, value)
	}
}

// FilterEntry is one button of the filter bar.
type FilterEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FilterCatalog is the filter document on disk.
type FilterCatalog struct {
	Filters []FilterEntry `json:"filters"`
}

// DefaultFilters is used whenever the filter document cannot be loaded.
func DefaultFilters() []FilterEntry {
	return []FilterEntry{
		{Name: "All", Value: string(FilterAll)},
		{Name: "Featured", Value: string(FilterFeatured)},
	}
}
