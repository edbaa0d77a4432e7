package ctxutil

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// RequestIDAttr tags spans with the request id.
const RequestIDAttr = attribute.Key("http.request_id")

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	val := ctx.Value(traceDataKey{})
	if td, ok := val.(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the trace and request ids carried by ctx as logger
// key-value pairs. Empty ids are skipped.
func LogFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	var fields []interface{}
	if td.TraceID != "" {
		fields = append(fields, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		fields = append(fields, "request_id", td.RequestID)
	}
	return fields
}

// SpanAttributes returns the request id carried by ctx as a span attribute.
func SpanAttributes(ctx context.Context) []attribute.KeyValue {
	td := GetTraceData(ctx)
	if td == nil || td.RequestID == "" {
		return nil
	}
	return []attribute.KeyValue{RequestIDAttr.String(td.RequestID)}
}
