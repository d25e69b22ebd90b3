package auth

import "context"

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDContextKey is the key for storing the requesting user's ID
	UserIDContextKey ContextKey = "userID"
)

// WithUserID returns a context carrying the requesting user's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the requesting user's ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}
