// Package tracing provides basic distributed tracing utilities for the mediator.
//
// This is a simple implementation for MVP purposes. For production use, consider
// integrating with OpenTelemetry or similar distributed tracing systems.
//
// Example usage:
//
//	tracer := tracing.NewTracer("dualmediator")
//	span, ctx := tracer.StartSpan(context.Background(), "mediate-tool-call")
//	defer tracer.EndSpan(span)
//
//	span.SetTag("tool_name", "get_balance")
//	span.AddEvent("policy-checked", map[string]string{"decision": "allow"})
//
//	// Pass ctx to child operations to propagate trace context
//	childSpan, childCtx := tracer.StartSpan(ctx, "resolve-keys")
//	defer tracer.EndSpan(childSpan)
package tracing
