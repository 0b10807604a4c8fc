package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	Path        string
	DatabaseURL string
}

// Open returns the KVStore selected by opts.Driver.
func Open(ctx context.Context, opts Options) (KVStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite, "sqlite3":
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("storage: sqlite driver requires a db path")
		}
		return OpenSQLite(ctx, opts.Path)
	case DriverPostgres, "pgx":
		if strings.TrimSpace(opts.DatabaseURL) == "" {
			return nil, fmt.Errorf("storage: postgres driver requires a database url")
		}
		return OpenPostgres(ctx, opts.DatabaseURL)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
