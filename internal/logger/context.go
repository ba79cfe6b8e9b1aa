package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single RPC call.
type LogContext struct {
	TraceID    string    // OpenTelemetry trace ID
	SpanID     string    // OpenTelemetry span ID
	Program    uint32    // RPC program ID (remote/QEMU/LXC)
	Procedure  string    // Procedure name (connect_open, domain_lookup_by_name, ...)
	Serial     int32     // Serial assigned to this call
	RemoteAddr string    // Transport peer address (unix socket path, etc.)
	AuthFlavor uint32    // RPC auth flavor used for this connection
	StartTime  time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext with the given remote address.
func NewLogContext(remoteAddr string) *LogContext {
	return &LogContext{
		RemoteAddr: remoteAddr,
		StartTime:  time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:    lc.TraceID,
		SpanID:     lc.SpanID,
		Program:    lc.Program,
		Procedure:  lc.Procedure,
		Serial:     lc.Serial,
		RemoteAddr: lc.RemoteAddr,
		AuthFlavor: lc.AuthFlavor,
		StartTime:  lc.StartTime,
	}
}

// WithCall returns a copy with the procedure and serial set.
func (lc *LogContext) WithCall(procedure string, serial int32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Procedure = procedure
		clone.Serial = serial
	}
	return clone
}

// WithAuth returns a copy with the auth flavor set
func (lc *LogContext) WithAuth(authFlavor uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.AuthFlavor = authFlavor
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
