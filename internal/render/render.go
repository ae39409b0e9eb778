// Package render projects items into display cards. It holds no state of
// its own; callers re-render from the store after every change.
package render

import (
	"context"
	"time"

	"github.com/araddon/dateparse"

	"github.com/erazemk/lostfound/internal/imaging"
	"github.com/erazemk/lostfound/internal/model"
)

// DefaultDateLayout is how item dates are shown when no layout is configured.
const DefaultDateLayout = "2 Jan 2006"

// EmptyText is shown on the placeholder card of an empty pane.
const EmptyText = "No items yet."

// ActionKind identifies a card action.
type ActionKind string

// Card actions.
const (
	ActionMarkReturned ActionKind = "mark-returned"
	ActionCopyContact  ActionKind = "copy-contact"
)

// Action is a button on a card. Run performs it.
type Action struct {
	Kind  ActionKind
	Label string
	Run   func(ctx context.Context) error
}

// Thumbnail is an embedded item image. Width and Height are zero when the
// image could not be inspected.
type Thumbnail struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// Card is the display form of one item.
type Card struct {
	ItemID      string
	Type        model.ItemType
	Placeholder bool
	Image       *Thumbnail
	Title       string
	Meta        string
	Description string
	Tags        []string
	Actions     []Action
}

// Pane is a list of cards shown together, such as all lost items.
type Pane struct {
	Name  string
	Title string
	Cards []Card
}

// Handlers perform card actions. Either may be nil.
type Handlers struct {
	MarkReturned func(ctx context.Context, id string) error
	CopyContact  func(ctx context.Context, contact string) error
}

// Renderer builds cards from items.
type Renderer struct {
	DateLayout string
	Handlers   Handlers
}

// Render replaces the pane's cards with one card per item, in order. An
// empty list renders a single placeholder card.
func (r *Renderer) Render(pane *Pane, items []model.Item) {
	if len(items) == 0 {
		pane.Cards = []Card{{Placeholder: true, Meta: EmptyText}}
		return
	}
	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, r.Card(&items[i]))
	}
	pane.Cards = cards
}

// Card builds the card for a single item.
func (r *Renderer) Card(item *model.Item) Card {
	card := Card{
		ItemID:      item.ID,
		Type:        item.Type,
		Title:       item.Name,
		Meta:        Meta(item, r.layout()),
		Description: item.Description,
	}

	if item.Image != "" {
		thumb := &Thumbnail{Src: item.Image, Alt: item.Name}
		if w, h, err := imaging.Dimensions(item.Image); err == nil {
			thumb.Width, thumb.Height = w, h
		}
		card.Image = thumb
	}

	if item.Category != "" {
		card.Tags = append(card.Tags, item.Category)
	}
	if item.Contact != "" {
		card.Tags = append(card.Tags, item.Contact)
	}

	id, contact := item.ID, item.Contact
	card.Actions = []Action{
		{
			Kind:  ActionMarkReturned,
			Label: "Mark Returned",
			Run: func(ctx context.Context) error {
				if r.Handlers.MarkReturned == nil {
					return nil
				}
				return r.Handlers.MarkReturned(ctx, id)
			},
		},
		{
			Kind:  ActionCopyContact,
			Label: "Copy Contact",
			Run: func(ctx context.Context) error {
				if r.Handlers.CopyContact == nil || contact == "" {
					return nil
				}
				return r.Handlers.CopyContact(ctx, contact)
			},
		},
	}
	return card
}

func (r *Renderer) layout() string {
	if r.DateLayout == "" {
		return DefaultDateLayout
	}
	return r.DateLayout
}

// Meta returns the one-line summary "Lost at Bus 6 • 3 May 2024".
func Meta(item *model.Item, layout string) string {
	location := item.Location
	if location == "" {
		location = "Unknown"
	}
	return item.Type.Label() + " at " + location + " • " + FormatDate(item.Date, layout)
}

// FormatDate shows an ISO date in layout. An empty date is shown as a dash
// and an unparseable one as-is.
func FormatDate(date, layout string) string {
	if date == "" {
		return "—"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		if t, err = dateparse.ParseLocal(date); err != nil {
			return date
		}
	}
	return t.Format(layout)
}
