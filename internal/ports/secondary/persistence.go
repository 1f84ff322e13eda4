// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a lookup has no match.
var ErrNotFound = errors.New("not found")

// HistoryRepository defines the secondary port for the invoice history.
// The history is a flat ordered list that is always read and written whole.
type HistoryRepository interface {
	// Load returns every stored identifier in stored order.
	Load(ctx context.Context) ([]string, error)

	// Replace atomically overwrites the stored history with the given list.
	Replace(ctx context.Context, history []string) error
}

// CompanyRepository defines the secondary port for company persistence.
type CompanyRepository interface {
	// List retrieves every registered company ordered by acronym.
	List(ctx context.Context) ([]*CompanyRecord, error)

	// GetByAcronym retrieves a company, or ErrNotFound.
	GetByAcronym(ctx context.Context, acronym string) (*CompanyRecord, error)

	// Create persists a new company.
	Create(ctx context.Context, company *CompanyRecord) error
}

// CompanyRecord represents a company as stored in persistence.
type CompanyRecord struct {
	Acronym   string
	Name      string
	CreatedAt string
}

// ActivityRepository defines the secondary port for the audit trail.
type ActivityRepository interface {
	// Create persists a new activity entry.
	Create(ctx context.Context, entry *ActivityRecord) error

	// GetByID retrieves an activity entry, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*ActivityRecord, error)

	// List retrieves activity entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an audit trail entry as stored in persistence.
type ActivityRecord struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	EntityType string
	Action     string
	Limit      int
}

// FileStore defines the secondary port for reading and writing backup files.
type FileStore interface {
	// ReadFile returns the content of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed.
	// It returns the absolute path written.
	WriteFile(ctx context.Context, path string, data []byte) (string, error)
}
