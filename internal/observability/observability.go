// Package observability defines the logging, tracing and metrics ports that
// StreetsMart's use cases, HTTP layer and event bus code against, plus the
// catalogue of every instrument the service exports. Vendor adapters live
// under infrastructure/observability.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the three signals handed to every service constructor.
type Observability interface {
	Tracer() Tracer
	Logger() Logger
	Metrics() Metrics
}

// Tracer starts spans; use cases name them "UC.<UseCase>".
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
}

// Logger writes structured lines. Messages are snake_case event names such as
// "use_case_done" or "payment_record_failed"; details go in fields.
type Logger interface {
	With(fields ...Field) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type Field struct {
	Key   string
	Value any
}

func F(k string, v any) Field { return Field{Key: k, Value: v} }

// Metrics hands out instruments by key. Unknown keys get no-op instruments.
type Metrics interface {
	Counter(name MetricKey) Counter
	Histogram(name MetricKey) Histogram
}

type Counter interface {
	Add(delta float64, labels ...Label)
	// Bind fixes the labels up front, e.g. one bound counter per payment outcome.
	Bind(labels ...Label) BoundCounter
}

type BoundCounter interface {
	Add(delta float64)
}

type Histogram interface {
	Observe(value float64, labels ...Label)
	Bind(labels ...Label) BoundHistogram
}

type BoundHistogram interface {
	Observe(value float64)
}

type Label struct{ Key, Value string }

func L(k, v string) Label { return Label{Key: k, Value: v} }

type MetricKey string

const (
	MUsecaseRequests     MetricKey = "usecase_requests_total"
	MUsecaseDuration     MetricKey = "usecase_duration_seconds"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
	MEventPublish        MetricKey = "event_publish_total"
	MPaymentOutcomes     MetricKey = "payment_outcomes_total"
	MVoiceIntents        MetricKey = "voice_intents_total"
)

type MetricKind int

const (
	KindCounter MetricKind = iota
	KindHistogram
)

// MetricSpec describes one exported instrument. Labels lists the label keys
// callers must pass, in order.
type MetricSpec struct {
	Key    MetricKey
	Kind   MetricKind
	Help   string
	Labels []string
}

// Catalogue is every instrument StreetsMart registers at startup.
var Catalogue = []MetricSpec{
	{MUsecaseRequests, KindCounter, "Total number of use case invocations.", []string{"use_case", "outcome"}},
	{MUsecaseDuration, KindHistogram, "Duration of use case execution in seconds.", []string{"use_case"}},
	{MHTTPRequests, KindCounter, "Total number of HTTP requests.", []string{"method", "route", "status"}},
	{MHTTPRequestDuration, KindHistogram, "Duration of HTTP requests in seconds.", []string{"method", "route", "status"}},
	{MEventPublish, KindCounter, "Re-render events handed to the event bus or streamed to browsers.", []string{"event", "outcome"}},
	{MPaymentOutcomes, KindCounter, "Simulated payment results.", []string{"outcome"}},
	{MVoiceIntents, KindCounter, "Voice transcripts classified per intent.", []string{"intent"}},
}
