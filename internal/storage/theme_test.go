package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestThemeRepositoryDefaultsToLight(t *testing.T) {
	repo := NewThemeRepository(NewMemoryStore(), "", nil)
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != model.ThemeLight {
		t.Fatalf("expected light default, got %q", got)
	}
}

func TestThemeRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewThemeRepository(kv, "", nil)
	if err := repo.Save(ctx, model.ThemeDark); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := kv.Get(ctx, DefaultThemeKey)
	if raw != "dark" {
		t.Fatalf("expected bare string payload, got %q", raw)
	}
	got, err := repo.Load(ctx)
	if err != nil || got != model.ThemeDark {
		t.Fatalf("load = %q, %v", got, err)
	}
}

func TestThemeRepositoryUnknownValueFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	_ = kv.Put(ctx, DefaultThemeKey, "sepia")
	got, err := NewThemeRepository(kv, "", nil).Load(ctx)
	if err != nil || got != model.ThemeLight {
		t.Fatalf("load = %q, %v", got, err)
	}
}

func TestThemeRepositoryRejectsInvalidSave(t *testing.T) {
	err := NewThemeRepository(NewMemoryStore(), "", nil).Save(context.Background(), model.Theme("neon"))
	if !errors.Is(err, model.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got: %v", err)
	}
}
