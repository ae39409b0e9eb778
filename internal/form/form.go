// Package form turns user input into new items: it validates the fields,
// embeds the optional image and prepends the item to the store.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/erazemk/lostfound/internal/imaging"
	"github.com/erazemk/lostfound/internal/metrics"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/store"
)

// DefaultLargeImageBytes is the size above which an image triggers a
// warning. It is advisory; larger images are still stored.
const DefaultLargeImageBytes = 500_000

// Controller creates items from submitted forms.
type Controller struct {
	Items   *store.ItemStore
	Metrics *metrics.Metrics

	LargeImageBytes int64
	Now             func() time.Time
	NewID           func(now time.Time) string
}

// NewController returns a Controller with default settings.
func NewController(items *store.ItemStore, m *metrics.Metrics) *Controller {
	return &Controller{
		Items:           items,
		Metrics:         m,
		LargeImageBytes: DefaultLargeImageBytes,
		Now:             time.Now,
		NewID:           NewID,
	}
}

// NewID returns an item id made of a random part and the creation time in
// milliseconds.
func NewID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return "itm_" + random + strconv.FormatInt(now.UnixMilli(), 10)
}

// EncodeImage returns src as a data URI, or "" when there is no image or it
// could not be read. Files in formats that are not recognized are kept
// under their declared type. Images above LargeImageBytes produce a warning
// notification but are still encoded.
func (c *Controller) EncodeImage(ctx context.Context, src ImageSource) string {
	if src == nil {
		return ""
	}

	size := src.Size()
	if c.LargeImageBytes > 0 && size > c.LargeImageBytes {
		slog.Warn("large image submitted", "size", humanize.Bytes(uint64(size)), "threshold", humanize.Bytes(uint64(c.LargeImageBytes)))
		c.Metrics.LargeImage()
		notify.Send(ctx, notify.LevelWarning, notify.MsgLargeImage)
	}

	rc, err := src.Open()
	if err != nil {
		c.imageFailed(err)
		return ""
	}
	defer rc.Close()

	uri, err := imaging.Encode(rc, src.ContentType())
	if err != nil {
		c.imageFailed(err)
		return ""
	}
	return uri
}

func (c *Controller) imageFailed(err error) {
	slog.Warn("image read failed, adding item without image", "error", err)
	c.Metrics.ImageFailure()
}

// Submit validates f, encodes the image and prepends the new item to the
// store. A validation failure returns a *ValidationError and leaves the
// store untouched.
func (c *Controller) Submit(ctx context.Context, f Fields, src ImageSource) (*model.Item, error) {
	clean, err := Validate(ctx, f)
	if err != nil {
		return nil, err
	}

	image := c.EncodeImage(ctx, src)

	now := c.Now()
	date := clean.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	item := model.Item{
		Type:        model.ItemType(clean.Type),
		Name:        clean.Name,
		Description: clean.Description,
		Location:    clean.Location,
		Contact:     clean.Contact,
		Date:        date,
		Category:    clean.Category,
		Image:       image,
		Returned:    false,
		CreatedAt:   now.UnixMilli(),
	}

	err = c.Items.Update(ctx, func(items []model.Item) ([]model.Item, error) {
		taken := make(map[string]bool, len(items))
		for _, existing := range items {
			taken[existing.ID] = true
		}
		item.ID = c.NewID(now)
		for taken[item.ID] {
			item.ID = c.NewID(now)
		}
		return append([]model.Item{item}, items...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}

	c.Metrics.ItemCreated(string(item.Type))
	slog.Info("item added", "id", item.ID, "type", item.Type, "name", item.Name, "image", item.Image != "")
	notify.Send(ctx, notify.LevelSuccess, notify.MsgItemAdded)
	return &item, nil
}
