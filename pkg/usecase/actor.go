package usecase

import "context"

type actorKey struct{}

// WithActor embeds the acting user's ID into the context. Audit entries pick
// it up as user_id; without it the column stays empty.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFrom(ctx context.Context) string {
	if userID, ok := ctx.Value(actorKey{}).(string); ok {
		return userID
	}
	return ""
}
