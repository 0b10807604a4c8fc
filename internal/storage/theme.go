package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
)

// ThemeRepository persists the display theme as a bare string under its own key.
type ThemeRepository struct {
	kv     KVStore
	key    string
	logger *log.Logger
}

func NewThemeRepository(kv KVStore, key string, logger *log.Logger) *ThemeRepository {
	if strings.TrimSpace(key) == "" {
		key = DefaultThemeKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ThemeRepository{kv: kv, key: key, logger: logger}
}

// Load returns the saved theme, or light when nothing usable is stored.
func (r *ThemeRepository) Load(ctx context.Context) (model.Theme, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ThemeLight, nil
		}
		return model.ThemeLight, fmt.Errorf("read %s: %w", r.key, err)
	}
	theme, err := model.ParseTheme(raw)
	if err != nil {
		r.logger.Warn("ignoring stored theme", "key", r.key, "value", raw)
		return model.ThemeLight, nil
	}
	return theme, nil
}

func (r *ThemeRepository) Save(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, theme)
	}
	if err := r.kv.Put(ctx, r.key, string(theme)); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}
