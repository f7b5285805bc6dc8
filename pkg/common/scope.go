package common

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIdLogField = "traceID"
	tracerName      = "puzzletrack"
)

// Scope is the envelope combining a trace span and a trace-tagged logger,
// carried through the chain of calls serving one request.
type Scope struct {
	Ctx     context.Context
	TraceID string
	span    oteltrace.Span
	Log     *log.Entry
}

// NewScope starts a child span on the request context and returns a scope
// whose logger is tagged with the trace id.
func NewScope(ctx context.Context, name string) *Scope {
	tracer := otel.Tracer(tracerName)
	tracerCtx, span := tracer.Start(ctx, name)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     tracerCtx,
		TraceID: traceID,
		span:    span,
		Log:     log.WithField(traceIdLogField, traceID),
	}
}

// Finish finishes the current scope.
func (s *Scope) Finish() {
	s.span.End()
}

// TraceEvent records a human-readable message on the span.
func (s *Scope) TraceEvent(eventMessage string) {
	s.span.AddEvent(eventMessage)
}

// TraceTag adds a tag to the span.
func (s *Scope) TraceTag(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// TraceError records an error on the span and marks it failed.
func (s *Scope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}
