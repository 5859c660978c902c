package core

import "context"

type contextKey string

// suppressHeaderKey marks a context as header-free for embedding callers.
const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader sets whether headers should be suppressed in the context.
// Non-CLI callers (the MCP tools) use this so data requests stay quiet.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader reads the header flag back; absent or non-bool
// values mean headers stay on.
func shouldSuppressHeader(ctx context.Context) bool {
	suppress, _ := ctx.Value(suppressHeaderKey).(bool)
	return suppress
}
