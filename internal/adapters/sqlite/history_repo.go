// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/invoicer/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Load returns every stored identifier ordered by position.
func (r *HistoryRepository) Load(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM invoices ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice history: %w", err)
	}
	defer rows.Close()

	history := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		history = append(history, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load invoice history: %w", err)
	}

	return history, nil
}

// Replace overwrites the stored history in a single transaction.
func (r *HistoryRepository) Replace(ctx context.Context, history []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoices"); err != nil {
		return fmt.Errorf("failed to clear invoice history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO invoices (position, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range history {
		if _, err := stmt.ExecContext(ctx, i, name); err != nil {
			return fmt.Errorf("failed to store invoice %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice history: %w", err)
	}
	return nil
}

// Ensure HistoryRepository implements the interface
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
