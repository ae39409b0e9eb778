package model

import "strings"

// ItemType says whether an item was lost or found. It never changes after
// the item is created.
type ItemType string

// Item types.
const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

// Label returns the capitalized display label ("Lost" or "Found").
func (t ItemType) Label() string {
	if t == ItemTypeLost {
		return "Lost"
	}
	return "Found"
}

// Item is a single lost or found record. The JSON names are the persisted
// schema and must stay stable.
type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Contact     string   `json:"contact"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Returned    bool     `json:"returned"`
	CreatedAt   int64    `json:"createdAt"`
}

// SearchText returns the lowercased haystack used for free-text search:
// the non-empty name, description, location, category and contact joined
// by single spaces.
func (i *Item) SearchText() string {
	parts := make([]string, 0, 5)
	for _, f := range []string{i.Name, i.Description, i.Location, i.Category, i.Contact} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
