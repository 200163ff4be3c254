package models

import (
	"fmt"
	"strings"
)

// ListFilter holds the resolved predicates for a product listing. Nil
// fields match everything; set fields combine with logical AND.
type ListFilter struct {
	Name      *string
	Category  *Category
	Available *bool
}

// ParseListFilter resolves the raw name/category/available query
// parameters into a ListFilter. Name matches are exact and never fail;
// category must be a member of the enumeration and available must be
// the literal token "true" or "false" (case-insensitive), anything
// else is a validation error rather than an empty result.
func ParseListFilter(name, category, available string) (ListFilter, error) {
	var filter ListFilter

	if name != "" {
		filter.Name = &name
	}

	if category != "" {
		c, err := ParseCategory(category)
		if err != nil {
			return ListFilter{}, err
		}
		filter.Category = &c
	}

	if available != "" {
		switch strings.ToLower(available) {
		case "true":
			v := true
			filter.Available = &v
		case "false":
			v := false
			filter.Available = &v
		default:
			return ListFilter{}, NewDataValidationError("available", fmt.Sprintf("Invalid boolean value for [available]: %s", available))
		}
	}

	return filter, nil
}

// Matches reports whether a product satisfies every set predicate.
func (f ListFilter) Matches(p *Product) bool {
	if f.Name != nil && p.Name != *f.Name {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	return true
}
