package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/lostfound/internal/model"
)

func wallet() model.Item {
	return model.Item{
		ID: "itm_1", Type: model.ItemTypeLost, Name: "Wallet", Description: "Black leather wallet",
		Location: "Bus 6", Contact: "ana@example.com", Category: "Accessories", Date: "2024-05-03",
	}
}

func TestRenderEmptyPaneShowsPlaceholder(t *testing.T) {
	r := &Renderer{}
	pane := &Pane{Name: "lost", Cards: []Card{{Title: "stale"}}}

	r.Render(pane, nil)

	require.Len(t, pane.Cards, 1)
	assert.True(t, pane.Cards[0].Placeholder)
	assert.Equal(t, EmptyText, pane.Cards[0].Meta)
}

func TestRenderReplacesCardsInOrder(t *testing.T) {
	r := &Renderer{}
	pane := &Pane{Cards: []Card{{Title: "stale"}, {Title: "stale2"}, {Title: "stale3"}}}

	second := wallet()
	second.ID, second.Name = "itm_2", "Purse"
	r.Render(pane, []model.Item{second, wallet()})

	require.Len(t, pane.Cards, 2)
	assert.Equal(t, "Purse", pane.Cards[0].Title)
	assert.Equal(t, "Wallet", pane.Cards[1].Title)
}

func TestCardContent(t *testing.T) {
	r := &Renderer{}
	item := wallet()
	card := r.Card(&item)

	assert.Equal(t, "itm_1", card.ItemID)
	assert.Equal(t, "Wallet", card.Title)
	assert.Equal(t, "Lost at Bus 6 • 3 May 2024", card.Meta)
	assert.Equal(t, "Black leather wallet", card.Description)
	assert.Equal(t, []string{"Accessories", "ana@example.com"}, card.Tags)
	assert.Nil(t, card.Image)
	require.Len(t, card.Actions, 2)
	assert.Equal(t, ActionMarkReturned, card.Actions[0].Kind)
	assert.Equal(t, ActionCopyContact, card.Actions[1].Kind)
}

func TestMetaFallbacks(t *testing.T) {
	item := model.Item{Type: model.ItemTypeFound}
	assert.Equal(t, "Found at Unknown • —", Meta(&item, DefaultDateLayout))

	item.Date = "not a date"
	assert.Equal(t, "Found at Unknown • not a date", Meta(&item, DefaultDateLayout))
}

func TestMetaCustomLayout(t *testing.T) {
	item := wallet()
	assert.Equal(t, "Lost at Bus 6 • 05/03/2024", Meta(&item, "01/02/2006"))
}

func TestOptionalTagsOmitted(t *testing.T) {
	item := wallet()
	item.Category = ""
	card := (&Renderer{}).Card(&item)
	assert.Equal(t, []string{"ana@example.com"}, card.Tags)
}

func TestThumbnailDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 5))))

	item := wallet()
	item.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	card := (&Renderer{}).Card(&item)

	require.NotNil(t, card.Image)
	assert.Equal(t, "Wallet", card.Image.Alt)
	assert.Equal(t, 8, card.Image.Width)
	assert.Equal(t, 5, card.Image.Height)
}

func TestBrokenImageStillShown(t *testing.T) {
	item := wallet()
	item.Image = "data:image/png;base64,AAAA"
	card := (&Renderer{}).Card(&item)

	require.NotNil(t, card.Image)
	assert.Zero(t, card.Image.Width)
}

func TestActionsCallInjectedHandlers(t *testing.T) {
	var returned, copied string
	r := &Renderer{Handlers: Handlers{
		MarkReturned: func(_ context.Context, id string) error { returned = id; return nil },
		CopyContact:  func(_ context.Context, contact string) error { copied = contact; return nil },
	}}

	item := wallet()
	card := r.Card(&item)
	for _, a := range card.Actions {
		require.NoError(t, a.Run(context.Background()))
	}

	assert.Equal(t, "itm_1", returned)
	assert.Equal(t, "ana@example.com", copied)
}

func TestCopyWithoutContactIsNoop(t *testing.T) {
	called := false
	r := &Renderer{Handlers: Handlers{
		CopyContact: func(context.Context, string) error { called = true; return nil },
	}}

	item := wallet()
	item.Contact = ""
	card := r.Card(&item)
	require.NoError(t, card.Actions[1].Run(context.Background()))
	assert.False(t, called)

	// Nil handlers are no-ops too.
	card = (&Renderer{}).Card(&item)
	assert.NoError(t, card.Actions[0].Run(context.Background()))
}

func TestWriteTerminal(t *testing.T) {
	r := &Renderer{}
	lost := &Pane{Name: "lost", Title: "Lost"}
	found := &Pane{Name: "found", Title: "Found"}
	r.Render(lost, []model.Item{wallet()})
	r.Render(found, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteTerminal(&buf, lost, found))

	out := buf.String()
	for _, want := range []string{"Lost", "Found", "Wallet", "Bus 6", "#Accessories", "itm_1", EmptyText} {
		assert.True(t, strings.Contains(out, want), "missing %q in output:\n%s", want, out)
	}
}
