// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/invoicer/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// a second pooled connection would see a different, empty database
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCompany inserts a company row.
func seedCompany(t *testing.T, database *sql.DB, acronym, name string) {
	t.Helper()
	if _, err := database.Exec("INSERT INTO companies (acronym, name) VALUES (?, ?)", acronym, name); err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
}

// seedInvoices inserts history rows in the given order.
func seedInvoices(t *testing.T, database *sql.DB, names ...string) {
	t.Helper()
	for i, name := range names {
		if _, err := database.Exec("INSERT INTO invoices (position, name) VALUES (?, ?)", i, name); err != nil {
			t.Fatalf("failed to seed invoice: %v", err)
		}
	}
}
