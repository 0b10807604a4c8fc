package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// KVStore is the local key-value storage the todo and theme adapters write
// through. Values are opaque text; Get returns ErrNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Stamped is implemented by backends that record when each key was written.
type Stamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

const (
	DefaultTodosKey = "todos"
	DefaultThemeKey = "theme"
)
