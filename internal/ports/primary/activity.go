package primary

import "context"

// ActivityService defines the primary port for the history audit trail.
type ActivityService interface {
	// ListActivity retrieves activity entries matching the given filters, newest first.
	ListActivity(ctx context.Context, filters ActivityFilters) ([]*ActivityEntry, error)

	// GetActivity retrieves a single activity entry by ID.
	GetActivity(ctx context.Context, id string) (*ActivityEntry, error)

	// PruneActivity deletes entries older than the specified number of days.
	PruneActivity(ctx context.Context, olderThanDays int) (int, error)
}

// ActivityEntry represents an audit trail entry at the port boundary.
type ActivityEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string // 'invoice', 'history', 'company'
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	EntityType string
	Action     string
	Limit      int
}
