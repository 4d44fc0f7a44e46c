package services

import "context"

type ctxKey string

// TraceIDKey carries the inbound request trace id into outbound calls.
const TraceIDKey ctxKey = "trace_id"

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}
