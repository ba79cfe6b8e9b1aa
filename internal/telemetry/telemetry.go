// Package telemetry wires each RPC call to an OpenTelemetry span, the way
// the wider example corpus instruments its own hot paths. Unlike a server
// process, this client never owns a TracerProvider or exporter: it calls
// otel.Tracer, which defaults to a no-op implementation until the embedding
// application registers its own provider via otel.SetTracerProvider.
package telemetry

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/coriolis-systems/govirt"

// Attribute keys for RPC call spans.
const (
	AttrRPCSerial    = "rpc.serial"
	AttrRPCProgram   = "rpc.program"
	AttrRPCProcedure = "rpc.procedure"
)

// Serial returns an attribute for the call's serial number.
func Serial(serial int32) attribute.KeyValue {
	return attribute.Int64(AttrRPCSerial, int64(serial))
}

// Program returns an attribute for the RPC program number.
func Program(program uint32) attribute.KeyValue {
	return attribute.Int64(AttrRPCProgram, int64(program))
}

// Procedure returns an attribute for the RPC procedure number.
func Procedure(procedure uint32) attribute.KeyValue {
	return attribute.Int64(AttrRPCProcedure, int64(procedure))
}

// Tracer returns the tracer calls are recorded against.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartCallSpan starts a span named "rpc.<procedure>" for one outstanding
// call, carrying its serial, program, and procedure number as attributes.
func StartCallSpan(ctx context.Context, program, procedure uint32, serial int32) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "rpc."+strconv.FormatUint(uint64(procedure), 10), trace.WithAttributes(
		Serial(serial),
		Program(program),
		Procedure(procedure),
	))
}

// EndCallSpan records err (if any) on span and closes it.
func EndCallSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// IDs returns the current span's trace and span IDs, for correlation with
// log lines via logger.LogContext.WithTrace. Both are empty if ctx carries
// no recording span.
func IDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
