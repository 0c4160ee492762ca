package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey carries the per-request trace ID.
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID.
	traceIDLength = 16
)

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID. The second
// return is false on unauthenticated requests.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// SetTraceID adds a fresh trace ID to the context for log and error
// response correlation.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a 32-character hex string. If crypto/rand fails
// it falls back to timestamp-derived bytes rather than a static value.
func generateTraceID() string {
	b := make([]byte, traceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != traceIDLength {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"bytes_read", n)
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

func fallbackTraceID() string {
	b := make([]byte, traceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(time.Now().Nanosecond()))
	binary.BigEndian.PutUint32(b[12:16], uint32(time.Now().Unix()))
	return hex.EncodeToString(b)
}
