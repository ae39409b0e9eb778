// Package tracker wires the item store, form controller, query engine and
// renderer into the operations the web UI, JSON API and CLI expose.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/erazemk/lostfound/internal/clipboard"
	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/metrics"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/render"
	"github.com/erazemk/lostfound/internal/store"
)

// ErrNotFound is returned for operations on an unknown item id.
var ErrNotFound = errors.New("item not found")

// Tracker is the lost-and-found application.
type Tracker struct {
	Items     *store.ItemStore
	Settings  *store.Settings
	Form      *form.Controller
	Clipboard clipboard.Writer
	Metrics   *metrics.Metrics
	Renderer  *render.Renderer
}

// New builds a Tracker over backend. cb and m may be nil.
func New(backend kv.Store, cb clipboard.Writer, m *metrics.Metrics) *Tracker {
	items := store.NewItemStore(backend, m)
	t := &Tracker{
		Items:     items,
		Settings:  store.NewSettings(backend),
		Form:      form.NewController(items, m),
		Clipboard: cb,
		Metrics:   m,
	}
	t.Renderer = &render.Renderer{
		DateLayout: render.DefaultDateLayout,
		Handlers: render.Handlers{
			MarkReturned: t.markReturned,
			CopyContact:  t.copyContact,
		},
	}
	return t
}

// Submit creates a new item from form input.
func (t *Tracker) Submit(ctx context.Context, f form.Fields, src form.ImageSource) (*model.Item, error) {
	return t.Form.Submit(ctx, f, src)
}

// Board returns the visible items matching f, split into lost and found.
func (t *Tracker) Board(ctx context.Context, f query.Filter) (query.Board, error) {
	items, err := t.Items.Load(ctx)
	if err != nil {
		return query.Board{}, err
	}
	return query.Apply(items, f), nil
}

// Panes renders the board for f into the lost and found panes.
func (t *Tracker) Panes(ctx context.Context, f query.Filter) (lost, found *render.Pane, err error) {
	board, err := t.Board(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	lost = &render.Pane{Name: string(model.ItemTypeLost), Title: "Lost"}
	found = &render.Pane{Name: string(model.ItemTypeFound), Title: "Found"}
	t.Renderer.Render(lost, board.Lost)
	t.Renderer.Render(found, board.Found)
	return lost, found, nil
}

// Item returns a stored item, including returned ones.
func (t *Tracker) Item(ctx context.Context, id string) (*model.Item, error) {
	item, err := t.Items.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Run performs a card action on the item with the given id.
func (t *Tracker) Run(ctx context.Context, id string, kind render.ActionKind) error {
	item, err := t.Item(ctx, id)
	if err != nil {
		return err
	}
	card := t.Renderer.Card(item)
	for _, a := range card.Actions {
		if a.Kind == kind {
			return a.Run(ctx)
		}
	}
	return fmt.Errorf("unknown action %q", kind)
}

// MarkReturned flags an item as returned.
func (t *Tracker) MarkReturned(ctx context.Context, id string) error {
	return t.Run(ctx, id, render.ActionMarkReturned)
}

// CopyContact puts an item's contact on the clipboard.
func (t *Tracker) CopyContact(ctx context.Context, id string) error {
	return t.Run(ctx, id, render.ActionCopyContact)
}

func (t *Tracker) markReturned(ctx context.Context, id string) error {
	found, err := t.Items.MarkReturned(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	t.Metrics.ItemReturned()
	slog.Info("item marked returned", "id", id)
	notify.Send(ctx, notify.LevelSuccess, notify.MsgReturned)
	return nil
}

// copyContact silently does nothing when there is no clipboard.
func (t *Tracker) copyContact(ctx context.Context, contact string) error {
	if contact == "" || t.Clipboard == nil || !t.Clipboard.Available() {
		return nil
	}
	if err := t.Clipboard.WriteAll(contact); err != nil {
		slog.Warn("clipboard write failed", "error", err)
		return nil
	}
	t.Metrics.ContactCopied()
	notify.Send(ctx, notify.LevelSuccess, notify.MsgContactCopy)
	return nil
}

// Theme returns the saved theme preference.
func (t *Tracker) Theme(ctx context.Context) (model.Theme, error) {
	return t.Settings.Theme(ctx)
}

// SetTheme saves a theme preference. ThemeAuto toggles the current one, see
// ToggleTheme.
func (t *Tracker) SetTheme(ctx context.Context, theme model.Theme) (model.Theme, error) {
	if theme == model.ThemeAuto {
		return t.ToggleTheme(ctx, model.ThemeAuto)
	}
	if err := t.Settings.SetTheme(ctx, theme); err != nil {
		return model.ThemeAuto, err
	}
	return theme, nil
}

// ToggleTheme saves the opposite of the theme currently shown. A saved
// preference wins; without one, shown is the scheme the client picked from
// its system setting.
func (t *Tracker) ToggleTheme(ctx context.Context, shown model.Theme) (model.Theme, error) {
	saved, err := t.Settings.Theme(ctx)
	if err != nil {
		return model.ThemeAuto, err
	}
	if saved != model.ThemeAuto {
		shown = saved
	}
	theme := shown.Toggle()
	if err := t.Settings.SetTheme(ctx, theme); err != nil {
		return model.ThemeAuto, err
	}
	return theme, nil
}
