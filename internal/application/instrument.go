package application

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const spanPrefix = "UC."

// Instruments bundles what every use case needs for RED metrics, spans and the
// use_case_done log line.
type Instruments struct {
	log          observability.Logger
	tracer       observability.Tracer
	metrics      observability.Metrics
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewInstruments(tel observability.Observability, service string) Instruments {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return Instruments{
		log:          tel.Logger().With(observability.F("service", service)),
		tracer:       tel.Tracer(),
		metrics:      metrics,
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
	}
}

func (in Instruments) Logger() observability.Logger { return in.log }

func (in Instruments) Counter(key observability.MetricKey) observability.Counter {
	return in.metrics.Counter(key)
}

// Run is one use case execution. Finish it with End, usually deferred.
type Run struct {
	useCase    string
	span       trace.Span
	logger     observability.Logger
	start      time.Time
	outcome    string
	statusText string
	fields     []observability.Field
	in         Instruments
}

// Start opens a span named UC.<spanName> and binds a logger carrying the use case name.
func (in Instruments) Start(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *Run) {
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := in.tracer.Start(ctx, spanPrefix+spanName, attrs...)
	logger := logctx.FromOr(ctx, in.log).With(observability.F("use_case", useCase))
	ctx = logctx.With(ctx, logger)

	return ctx, &Run{
		useCase:    useCase,
		span:       span,
		logger:     logger,
		start:      time.Now(),
		outcome:    "success",
		statusText: "OK",
		in:         in,
	}
}

// Fail marks the run as an error with a stable status code for logs and spans.
func (r *Run) Fail(status string) {
	r.outcome, r.statusText = "error", status
}

// Status sets a non-error status, e.g. DECLINED or NOT_FOUND.
func (r *Run) Status(status string) {
	r.statusText = status
}

func (r *Run) With(fields ...observability.Field) {
	r.fields = append(r.fields, fields...)
}

func (r *Run) Span() trace.Span { return r.span }

func (r *Run) Logger() observability.Logger { return r.logger }

func (r *Run) End(err error) {
	if err != nil && r.outcome != "error" {
		r.outcome = "error"
		if r.statusText == "OK" {
			r.statusText = "ERROR"
		}
	}
	latency := time.Since(r.start).Seconds()

	if r.span != nil {
		if err != nil {
			r.span.RecordError(err)
			r.span.SetStatus(codes.Error, r.statusText)
		} else {
			r.span.SetStatus(codes.Ok, r.statusText)
		}
		r.span.End()
	}

	if r.in.reqCounter != nil {
		r.in.reqCounter.Add(1,
			observability.L("use_case", r.useCase),
			observability.L("outcome", r.outcome),
		)
	}
	if r.in.durHistogram != nil {
		r.in.durHistogram.Observe(latency,
			observability.L("use_case", r.useCase),
		)
	}

	fields := []observability.Field{
		observability.F("outcome", r.outcome),
		observability.F("status", r.statusText),
		observability.F("latency_seconds", latency),
	}
	if r.span != nil {
		if sc := r.span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
	}
	fields = append(fields, r.fields...)
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}
	r.logger.Info("use_case_done", fields...)
}
