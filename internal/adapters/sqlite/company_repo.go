package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/invoicer/internal/ports/secondary"
)

// CompanyRepository implements secondary.CompanyRepository with SQLite.
type CompanyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new SQLite company repository.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List retrieves every registered company ordered by acronym.
func (r *CompanyRepository) List(ctx context.Context) ([]*secondary.CompanyRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT acronym, name, created_at FROM companies ORDER BY acronym")
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*secondary.CompanyRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.CompanyRecord{}
		if err := rows.Scan(&record.Acronym, &record.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		companies = append(companies, record)
	}

	return companies, rows.Err()
}

// GetByAcronym retrieves a company by its acronym.
func (r *CompanyRepository) GetByAcronym(ctx context.Context, acronym string) (*secondary.CompanyRecord, error) {
	var createdAt time.Time
	record := &secondary.CompanyRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT acronym, name, created_at FROM companies WHERE acronym = ?",
		acronym,
	).Scan(&record.Acronym, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("company %s: %w", acronym, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *secondary.CompanyRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO companies (acronym, name) VALUES (?, ?)",
		company.Acronym,
		company.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// Ensure CompanyRepository implements the interface
var _ secondary.CompanyRepository = (*CompanyRepository)(nil)
