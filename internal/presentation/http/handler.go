package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	appinv "github.com/Zhima-Mochi/streetsmart/internal/application/inventory"
	appledger "github.com/Zhima-Mochi/streetsmart/internal/application/ledger"
	apppay "github.com/Zhima-Mochi/streetsmart/internal/application/payment"
	apptheme "github.com/Zhima-Mochi/streetsmart/internal/application/theme"
	appvoice "github.com/Zhima-Mochi/streetsmart/internal/application/voice"
	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	dompay "github.com/Zhima-Mochi/streetsmart/internal/domain/payment"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
	domtheme "github.com/Zhima-Mochi/streetsmart/internal/domain/theme"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Services are the application services the handler serves.
type Services struct {
	Inventory *appinv.Service
	Ledger    *appledger.Service
	Payments  *apppay.Simulator
	Assistant *appvoice.Assistant
	Voice     *appvoice.Session
	Theme     *apptheme.Service
	// Speaker also receives every line spoken in a voice response.
	Speaker speech.Output
}

type Handler struct {
	svc    Services
	events *EventStream
	log    observability.Logger
	tel    observability.Observability

	httpRequests observability.Counter
	httpDuration observability.Histogram
}

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	maxBodyBytes         = 1 << 20
)

func NewHandler(svc Services, events *EventStream, logger observability.Logger, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = tel.Logger()
	}
	if svc.Speaker == nil {
		svc.Speaker = speech.Silent()
	}
	return &Handler{
		svc:          svc,
		events:       events,
		log:          baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:          tel,
		httpRequests: tel.Metrics().Counter(observability.MHTTPRequests),
		httpDuration: tel.Metrics().Histogram(observability.MHTTPRequestDuration),
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Trace → request logger → HTTP metrics → access log → handler
	h.muxHandle(mux, http.MethodGet, "/inventory", h.handleListInventory)
	h.muxHandle(mux, http.MethodPost, "/inventory", h.handleAddItem)
	h.muxHandle(mux, http.MethodGet, "/inventory/search", h.handleSearchInventory)
	h.muxHandle(mux, http.MethodGet, "/inventory/stats", h.handleInventoryStats)
	h.muxHandle(mux, http.MethodPatch, "/inventory/{id}", h.handleUpdateItem)
	h.muxHandle(mux, http.MethodDelete, "/inventory/{id}", h.handleDeleteItem)

	h.muxHandle(mux, http.MethodGet, "/transactions", h.handleListTransactions)
	h.muxHandle(mux, http.MethodPost, "/transactions", h.handleRecordTransaction)

	h.muxHandle(mux, http.MethodPost, "/payments", h.handleSubmitPayment)
	h.muxHandle(mux, http.MethodGet, "/payments/status", h.handlePaymentStatus)

	h.muxHandle(mux, http.MethodPost, "/voice/commands", h.handleVoiceCommand)
	h.muxHandle(mux, http.MethodPost, "/voice/events", h.handleVoiceEvent)
	h.muxHandle(mux, http.MethodGet, "/voice/session", h.handleVoiceSession)

	h.muxHandle(mux, http.MethodGet, "/theme", h.handleGetTheme)
	h.muxHandle(mux, http.MethodPut, "/theme", h.handleSetTheme)
	h.muxHandle(mux, http.MethodPost, "/theme/toggle", h.handleToggleTheme)

	if h.events != nil {
		h.muxHandle(mux, http.MethodGet, "/events", h.events.ServeHTTP)
	}
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	label := method + " " + route
	wrapped := h.withTrace(
		ObservabilityMiddleware(
			h.log,
			func(r *http.Request) string { return r.Header.Get(headerRequestID) },
		)(
			h.withHTTPMetrics(
				h.withAccessLog(handler),
			),
		),
	)
	mux.Handle(label, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Store stable route template for low-cardinality labels
		wrapped.ServeHTTP(w, r.WithContext(contextWithRoute(r.Context(), label)))
	}))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("streetsmart.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		ctxWithSpan, span := tracer.Start(parentCtx,
			route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.Pattern),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

// withHTTPMetrics records RED metrics on the injected instruments.
func (h *Handler) withHTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		labels := []observability.Label{
			observability.L("method", r.Method),
			observability.L("route", routeFromContext(r.Context())),
			observability.L("status", strconv.Itoa(lrw.status)),
		}
		h.httpRequests.Add(1, labels...)
		h.httpDuration.Observe(time.Since(start).Seconds(), labels...)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dominv.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, dominv.ErrNameRequired),
		errors.Is(err, dominv.ErrInvalidPrice),
		errors.Is(err, dominv.ErrInvalidQuantity),
		errors.Is(err, domledger.ErrInvalidAmount),
		errors.Is(err, domledger.ErrDescriptionMissing),
		errors.Is(err, domledger.ErrInvalidWindow),
		errors.Is(err, domledger.ErrInvalidStatus),
		errors.Is(err, dompay.ErrValidation),
		errors.Is(err, domtheme.ErrUnknown),
		errors.Is(err, appvoice.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, dominv.ErrConflict),
		errors.Is(err, apppay.ErrPaymentInFlight):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, appvoice.ErrVoiceUnsupported),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
