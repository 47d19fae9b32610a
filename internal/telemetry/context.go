package telemetry

import "context"

// invocationIDKey is the context key type used to store an invocation ID.
type invocationIDKey struct{}

// WithInvocationID returns a child context carrying the given invocation ID.
// One ID spans a single tool call from the delivery layer down to the
// transport client.
func WithInvocationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDKey{}, id)
}

// InvocationIDFromContext returns the invocation ID from ctx, if present.
func InvocationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(invocationIDKey{}).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
