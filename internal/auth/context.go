package auth

import (
	"context"

	"reliefhub-backend/internal/models"
)

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

const actorKey contextKey = "actor"

// WithActor returns a context carrying the resolved actor.
func WithActor(ctx context.Context, actor *models.ChatUser) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the resolved actor from the request context.
// The second return is false for anonymous callers; absence of an actor is
// an explicit state, never substituted with a default identity.
func ActorFromContext(ctx context.Context) (*models.ChatUser, bool) {
	actor, ok := ctx.Value(actorKey).(*models.ChatUser)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}
