// Package ctxutil carries request-scoped values through context.
// It has no internal dependencies so any package can import it.
package ctxutil

import (
	"context"
	"os"
	"os/user"
)

// ActorKey is the context key for the actor recorded in the audit trail.
type ActorKey struct{}

// WithActorID returns a context with the actor ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// DefaultActor names whoever is running the CLI: $INVOICER_ACTOR, then the
// OS login name, then "unknown".
func DefaultActor() string {
	if actor := os.Getenv("INVOICER_ACTOR"); actor != "" {
		return actor
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
