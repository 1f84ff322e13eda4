package db

import (
	"context"
	"database/sql"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after every entry in migrations has run.
//
// This is the single source of truth for the database schema. Repository
// tests load it through GetSchemaSQL() instead of declaring their own
// tables, so a column referenced in code but missing here fails fast with
// "no such column".
//
// When changing tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Invoice history: a flat ordered list of identifier strings.
-- position is the display order; the list is always rewritten whole.
CREATE TABLE IF NOT EXISTS invoices (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Company registry
CREATE TABLE IF NOT EXISTS companies (
	acronym TEXT PRIMARY KEY CHECK(length(acronym) = 3),
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit trail of history and registry changes
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_activity_log_timestamp ON activity_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
`

// InitSchema brings the schema of database up to date. It reports whether
// the database was empty, in which case SchemaSQL was applied directly and
// every migration marked as done.
func InitSchema(ctx context.Context, database *sql.DB) (fresh bool, err error) {
	var tableCount int
	err = database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return false, err
	}

	if tableCount > 0 {
		return false, RunMigrations(ctx, database)
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, SchemaSQL); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, schemaVersionSQL); err != nil {
		return false, err
	}
	for _, m := range migrations {
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
