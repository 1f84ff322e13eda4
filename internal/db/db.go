package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at path, creating its directory and
// schema as needed. fresh is true when the schema was created by this
// call, which is the caller's cue to seed.
func Open(ctx context.Context, path string) (database *sql.DB, fresh bool, err error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, false, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// each pooled connection would get its own empty in-memory database
		database.SetMaxOpenConns(1)
	}

	if _, err := database.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, false, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	fresh, err = InitSchema(ctx, database)
	if err != nil {
		database.Close()
		return nil, false, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, fresh, nil
}
