package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its DSN in the given profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	driver := DB{db: sqliteDB, profile: profile}
	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema if it does not exist.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversation_session (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT NOT NULL UNIQUE,
			family_member_id TEXT NOT NULL,
			messages TEXT NOT NULL DEFAULT '[]',
			start_ts BIGINT NOT NULL,
			updated_ts BIGINT NOT NULL,
			emotional_state TEXT NOT NULL DEFAULT 'neutral',
			key_topics TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_session_member
			ON conversation_session (family_member_id, updated_ts)`,
		`CREATE TABLE IF NOT EXISTS emotional_memory (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			family_member_id TEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			topic TEXT NOT NULL,
			emotional_state TEXT NOT NULL DEFAULT 'neutral',
			key_points TEXT NOT NULL DEFAULT '[]',
			created_ts BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_emotional_memory_member
			ON emotional_memory (family_member_id, id)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to migrate schema")
		}
	}
	return nil
}
