package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Get reads a slot's JSON value into dest. An absent slot returns
// (false, nil); a corrupt value is logged and treated as absent so the
// caller falls back to the slot's default.
func (s *SQLiteStore) Get(ctx context.Context, slot Slot, dest interface{}) (bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw,
		"SELECT value FROM preferences WHERE slot = ?", string(slot),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading preference slot %q: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("prefs: slot %q holds corrupt value, using default: %v", slot, err)
		return false, nil
	}

	return true, nil
}

// Set JSON-encodes value and upserts it into the slot.
func (s *SQLiteStore) Set(ctx context.Context, slot Slot, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling preference slot %q: %w", slot, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (slot, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		string(slot), string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing preference slot %q: %w", slot, err)
	}

	return nil
}

// Remove deletes a slot. Removing an absent slot is not an error.
func (s *SQLiteStore) Remove(ctx context.Context, slot Slot) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM preferences WHERE slot = ?", string(slot),
	)
	if err != nil {
		return fmt.Errorf("removing preference slot %q: %w", slot, err)
	}
	return nil
}
