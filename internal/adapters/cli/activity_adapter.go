package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/invoicer/internal/ports/primary"
)

// ActivityAdapter prints the audit trail.
type ActivityAdapter struct {
	service primary.ActivityService
	out     io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given service.
func NewActivityAdapter(service primary.ActivityService, out io.Writer) *ActivityAdapter {
	return &ActivityAdapter{
		service: service,
		out:     out,
	}
}

// List prints activity entries newest first.
func (a *ActivityAdapter) List(ctx context.Context, filters primary.ActivityFilters) error {
	entries, err := a.service.ListActivity(ctx, filters)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %-7s %-6s %s", e.Timestamp, e.ActorID, e.EntityType, e.Action, e.EntityID)
		if e.FieldName != "" {
			line += fmt.Sprintf(" [%s: %s -> %s]", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Show prints one activity entry.
func (a *ActivityAdapter) Show(ctx context.Context, id string) error {
	e, err := a.service.GetActivity(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nEntry:  %s\n", e.ID)
	fmt.Fprintf(a.out, "Time:   %s\n", e.Timestamp)
	fmt.Fprintf(a.out, "Actor:  %s\n", e.ActorID)
	fmt.Fprintf(a.out, "Action: %s %s %s\n", e.Action, e.EntityType, e.EntityID)
	if e.FieldName != "" {
		fmt.Fprintf(a.out, "Change: %s: %s -> %s\n", e.FieldName, e.OldValue, e.NewValue)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Prune deletes entries older than days.
func (a *ActivityAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneActivity(ctx, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Pruned %d entr(ies) older than %d day(s)\n", okMark, n, days)
	return nil
}
