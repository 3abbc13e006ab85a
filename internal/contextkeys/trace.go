package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID помещает trace_id в контекст
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает trace_id или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// EnsureTraceID оставляет существующий trace_id или создает новый.
// Все попытки одного вызова API уходят с одним и тем же X-Trace-ID.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return ContextWithTraceID(ctx, traceID), traceID
}

// ParseTraceID принимает trace_id из заголовка только в формате UUID.
func ParseTraceID(header string) (string, bool) {
	id, err := uuid.Parse(header)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
