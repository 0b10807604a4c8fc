package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(t.Context(), db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Put(t.Context(), "todos", "[]"); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, err := store.Get(t.Context(), "todos")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got != "[]" {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}
