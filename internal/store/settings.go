package store

import (
	"context"
	"fmt"

	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/model"
)

// ThemeKey is the key the theme preference is persisted under.
const ThemeKey = "lf_theme"

// Settings persists user preferences next to the item collection.
type Settings struct {
	kv kv.Store
}

// NewSettings returns Settings backed by s.
func NewSettings(s kv.Store) *Settings {
	return &Settings{kv: s}
}

// Theme returns the saved theme, or ThemeAuto if none was saved.
func (s *Settings) Theme(ctx context.Context) (model.Theme, error) {
	raw, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return model.ThemeAuto, fmt.Errorf("getting theme: %w", err)
	}
	return model.ParseTheme(string(raw)), nil
}

// SetTheme saves the theme preference. Only dark and light are stored.
func (s *Settings) SetTheme(ctx context.Context, theme model.Theme) error {
	if theme != model.ThemeDark && theme != model.ThemeLight {
		return fmt.Errorf("invalid theme %q", theme)
	}
	if err := s.kv.Put(ctx, ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("setting theme: %w", err)
	}
	return nil
}
