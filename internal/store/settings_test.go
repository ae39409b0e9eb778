package store

import (
	"context"
	"testing"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/model"
)

func TestThemeDefaultsToAuto(t *testing.T) {
	settings := NewSettings(kv.NewSQLite(db.NewTestDB(t)))

	theme, err := settings.Theme(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if theme != model.ThemeAuto {
		t.Fatalf("expected auto theme, got %q", theme)
	}
}

func TestSetThemePersists(t *testing.T) {
	backend := kv.NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	if err := NewSettings(backend).SetTheme(ctx, model.ThemeDark); err != nil {
		t.Fatal(err)
	}

	// A fresh Settings over the same backend sees the saved value.
	theme, err := NewSettings(backend).Theme(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if theme != model.ThemeDark {
		t.Fatalf("expected dark, got %q", theme)
	}
}

func TestSetThemeRejectsAuto(t *testing.T) {
	settings := NewSettings(kv.NewMemory())
	if err := settings.SetTheme(context.Background(), model.ThemeAuto); err == nil {
		t.Fatal("expected error when saving auto theme")
	}
}

func TestThemeIsIndependentOfItems(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()

	items := NewItemStore(backend, nil)
	if err := items.Add(ctx, model.Item{ID: "itm_1", Type: model.ItemTypeLost, Name: "Umbrella"}); err != nil {
		t.Fatal(err)
	}
	if err := NewSettings(backend).SetTheme(ctx, model.ThemeLight); err != nil {
		t.Fatal(err)
	}

	loaded, err := items.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 item after saving theme, got %d", len(loaded))
	}
}
