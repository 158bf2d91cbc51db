// Package storage opens the two SQLite databases (records and audit)
// and applies their embedded migrations. Handles are owned by the
// top-level application and closed at shutdown; no package-level state.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"gradebook/internal/config"
	auditmigrations "gradebook/internal/migrations/audit"
	recordsmigrations "gradebook/internal/migrations/records"
)

// Handles bundles the open database connections.
type Handles struct {
	Records *sql.DB
	Audit   *sql.DB
}

// Open opens both databases and migrates them to the latest schema.
func Open(ctx context.Context, cfg *config.Config) (*Handles, error) {
	records, err := openDB(ctx, cfg.RecordsDBPath, recordsmigrations.Migrations)
	if err != nil {
		return nil, fmt.Errorf("opening records database: %w", err)
	}

	audit, err := openDB(ctx, cfg.AuditDBPath, auditmigrations.Migrations)
	if err != nil {
		records.Close()
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	return &Handles{Records: records, Audit: audit}, nil
}

// Close closes both databases, returning the first error encountered.
func (h *Handles) Close() error {
	err := h.Records.Close()
	if cerr := h.Audit.Close(); err == nil {
		err = cerr
	}
	return err
}

func openDB(ctx context.Context, path string, migrations embed.FS) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := runMigrations(ctx, db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB, migrations embed.FS) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}
