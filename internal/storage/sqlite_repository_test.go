package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todo-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSQLiteGetPutDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing key, got: %v", err)
	}

	if err := store.Put(ctx, "todos", `[]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "todos", `[{"id":1,"text":"a","completed":false}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, "todos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"id":1,"text":"a","completed":false}]` {
		t.Fatalf("unexpected value after overwrite: %q", got)
	}

	if err := store.Delete(ctx, "todos"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestSQLiteUpdatedAtUsesClock(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.Put(ctx, "theme", "dark"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.UpdatedAt(ctx, "theme")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("updated_at = %v, want %v", got, fixed)
	}

	var stamped Stamped = store
	if _, err := stamped.UpdatedAt(ctx, "todos"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unwritten key, got: %v", err)
	}
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "todo.db")
	store, err := OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.Put(t.Context(), "k", "v"); err != nil {
		t.Fatalf("put after open: %v", err)
	}
}
