// Package contact delivers portfolio contact-form submissions.
//
// Relays share one interface so the preview server can try EmailJS first and
// fall back to the Gmail API without changing caller code:
//
//	relay, _ := contact.NewChain(emailjs, gmail)
//	receipt, err := relay.Send(ctx, form)
//
// A chain stops at the first relay that accepts the form, so each submission
// is delivered at most once.
package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "go-folio/contact"

// Relay delivers a validated form.
type Relay interface {
	// Name identifies the relay in logs and errors.
	Name() string

	// Send delivers the form. Implementations validate before any I/O.
	Send(ctx context.Context, f Form) (Receipt, error)
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID     string    `json:"id"`
	Relay  string    `json:"relay"`
	SentAt time.Time `json:"sent_at"`
}

func newReceipt(relay string) Receipt {
	return Receipt{
		ID:     uuid.NewString(),
		Relay:  relay,
		SentAt: time.Now().UTC(),
	}
}

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// startSpan opens a span for one relay attempt.
func startSpan(ctx context.Context, relay string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "contact.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("contact.relay", relay)),
	)
}

// endSpan records the outcome and ends the span.
func endSpan(span trace.Span, r Receipt, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("contact.receipt", r.ID))
	}
	span.End()
}
