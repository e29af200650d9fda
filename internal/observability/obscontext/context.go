// Package obscontext carries request-scoped correlation values.
package obscontext

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
)

type actor struct {
	Username string
	Role     string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func WithActor(ctx context.Context, username, role string) context.Context {
	return context.WithValue(ctx, actorKey, actor{Username: username, Role: role})
}

func ActorFromContext(ctx context.Context) (username, role string) {
	if v, ok := ctx.Value(actorKey).(actor); ok {
		return v.Username, v.Role
	}
	return "", ""
}
