package context

import (
	"context"
	"strings"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorKey
	ipAddressKey
	userAgentKey
)

// Actor identifies the authenticated user behind a request.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, strings.TrimSpace(requestID))
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}

func WithClient(ctx context.Context, ipAddress, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ipAddressKey, strings.TrimSpace(ipAddress))
	return context.WithValue(ctx, userAgentKey, strings.TrimSpace(userAgent))
}

func ClientFromContext(ctx context.Context) (ipAddress, userAgent string) {
	if ctx == nil {
		return "", ""
	}
	ipAddress, _ = ctx.Value(ipAddressKey).(string)
	userAgent, _ = ctx.Value(userAgentKey).(string)
	return ipAddress, userAgent
}
