package auth

import (
	"context"

	"moveit/internal/entities"
)

type actorKey struct{}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}
