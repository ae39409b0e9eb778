package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/metrics"
	"github.com/erazemk/lostfound/internal/model"
)

// ItemsKey is the key the whole item collection is persisted under.
const ItemsKey = "lost_found_items_v1"

// ItemStore owns the persisted item collection. Every mutation reads the
// full collection, changes the in-memory copy and writes it back whole.
type ItemStore struct {
	kv      kv.Store
	metrics *metrics.Metrics

	// mu serializes Update within this process. Other processes sharing
	// the same file can still lose updates (last write wins).
	mu sync.Mutex
}

// NewItemStore returns an ItemStore backed by s. m may be nil.
func NewItemStore(s kv.Store, m *metrics.Metrics) *ItemStore {
	return &ItemStore{kv: s, metrics: m}
}

// Load returns the persisted collection, newest first. A missing key yields
// an empty collection. A malformed blob is logged and also treated as empty.
func (s *ItemStore) Load(ctx context.Context) ([]model.Item, error) {
	raw, err := s.kv.Get(ctx, ItemsKey)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	if raw == nil {
		return []model.Item{}, nil
	}

	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Error("failed to load items, treating store as empty", "error", err, "bytes", len(raw))
		s.metrics.CorruptLoad()
		return []model.Item{}, nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Save overwrites the persisted collection with items.
func (s *ItemStore) Save(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	if err := s.kv.Put(ctx, ItemsKey, raw); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	return nil
}

// Update loads the collection, passes it to fn and saves what fn returns.
// Nothing is written when fn returns an error.
func (s *ItemStore) Update(ctx context.Context, fn func([]model.Item) ([]model.Item, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return s.Save(ctx, items)
}

// Add prepends item to the collection.
func (s *ItemStore) Add(ctx context.Context, item model.Item) error {
	return s.Update(ctx, func(items []model.Item) ([]model.Item, error) {
		return append([]model.Item{item}, items...), nil
	})
}

// Find returns the item with the given id, returned or not, or nil.
func (s *ItemStore) Find(ctx context.Context, id string) (*model.Item, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// MarkReturned flags the item with the given id as returned and reports
// whether it exists. Marking an already returned item is a no-op.
func (s *ItemStore) MarkReturned(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.Update(ctx, func(items []model.Item) ([]model.Item, error) {
		for i := range items {
			if items[i].ID == id {
				found = true
				items[i].Returned = true
				break
			}
		}
		return items, nil
	})
	if err != nil {
		return false, fmt.Errorf("marking item returned: %w", err)
	}
	return found, nil
}
