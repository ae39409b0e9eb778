// Package query selects and groups the items shown to the user. It holds no
// index: every call works on the full collection it is given.
package query

import (
	"strings"

	"github.com/erazemk/lostfound/internal/model"
)

// TypeFilter restricts results to one item type, or none.
type TypeFilter string

// Type filters.
const (
	TypeAll   TypeFilter = "all"
	TypeLost  TypeFilter = TypeFilter(model.ItemTypeLost)
	TypeFound TypeFilter = TypeFilter(model.ItemTypeFound)
)

// ParseTypeFilter maps user input to a TypeFilter. Empty or unknown values
// mean all.
func ParseTypeFilter(s string) TypeFilter {
	switch TypeFilter(strings.ToLower(strings.TrimSpace(s))) {
	case TypeLost:
		return TypeLost
	case TypeFound:
		return TypeFound
	default:
		return TypeAll
	}
}

// Filter is a free-text query plus a type filter.
type Filter struct {
	Query string
	Type  TypeFilter
	// IncludeReturned also matches items already marked returned.
	IncludeReturned bool
}

// Board is the visible, matching items split into the two panes.
type Board struct {
	Lost  []model.Item `json:"lost"`
	Found []model.Item `json:"found"`
}

// Visible returns the items that have not been returned, in order.
func Visible(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if !item.Returned {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item passes the type filter and contains query
// (case-insensitive) in any of its text fields.
func Matches(item *model.Item, query string, typeFilter TypeFilter) bool {
	if typeFilter != "" && typeFilter != TypeAll && string(item.Type) != string(typeFilter) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(item.SearchText(), q)
}

// Partition splits items by type, keeping their relative order.
func Partition(items []model.Item) (lost, found []model.Item) {
	lost = []model.Item{}
	found = []model.Item{}
	for _, item := range items {
		switch item.Type {
		case model.ItemTypeLost:
			lost = append(lost, item)
		case model.ItemTypeFound:
			found = append(found, item)
		}
	}
	return lost, found
}

// Apply returns the visible items matching f, partitioned by type.
func Apply(items []model.Item, f Filter) Board {
	if !f.IncludeReturned {
		items = Visible(items)
	}
	matched := make([]model.Item, 0, len(items))
	for _, item := range items {
		if Matches(&item, f.Query, f.Type) {
			matched = append(matched, item)
		}
	}
	lost, found := Partition(matched)
	return Board{Lost: lost, Found: found}
}
