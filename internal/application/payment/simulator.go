package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	dompay "github.com/Zhima-Mochi/streetsmart/internal/domain/payment"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	paymentService = "payment-service"

	DefaultProcessingDelay = 2 * time.Second
	DefaultResetDelay      = 5 * time.Second
	DefaultSuccessRate     = 0.9

	spokenSuccess = "Payment completed successfully"
	spokenFailure = "Payment failed. Please try again"
)

// ErrPaymentInFlight is returned when a submission arrives while another
// payment is processing. Submissions are rejected, never queued.
var ErrPaymentInFlight = dompay.ErrInFlight

type Config struct {
	ProcessingDelay time.Duration
	ResetDelay      time.Duration
	SuccessRate     float64
}

func (c Config) withDefaults() Config {
	if c.ProcessingDelay <= 0 {
		c.ProcessingDelay = DefaultProcessingDelay
	}
	if c.ResetDelay <= 0 {
		c.ResetDelay = DefaultResetDelay
	}
	if c.SuccessRate <= 0 || c.SuccessRate > 1 {
		c.SuccessRate = DefaultSuccessRate
	}
	return c
}

// Result is the terminal state of one submission.
type Result struct {
	Status      dompay.Status          `json:"status"`
	Display     dompay.Display         `json:"display"`
	Transaction *domledger.Transaction `json:"transaction,omitempty"`
}

// Snapshot is the simulator state as shown by the status panel.
type Snapshot struct {
	Status    dompay.Status  `json:"status"`
	Recipient string         `json:"recipient,omitempty"`
	Amount    float64        `json:"amount,omitempty"`
	Display   dompay.Display `json:"display"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Simulator runs the single payment flow of an application context:
// ready -> processing -> success|failure -> ready.
type Simulator struct {
	cfg       Config
	clock     Clock
	random    RandomSource
	recorder  TransactionRecorder
	publisher domoutbox.Publisher
	speaker   speech.Output
	in        application.Instruments
	succeeded observability.BoundCounter
	failed    observability.BoundCounter

	mu         sync.Mutex
	session    *dompay.Session
	generation uint64
	resetTimer Timer
}

func NewSimulator(
	cfg Config,
	clock Clock,
	random RandomSource,
	recorder TransactionRecorder,
	publisher domoutbox.Publisher,
	speaker speech.Output,
	tel observability.Observability,
) *Simulator {
	if clock == nil {
		clock = RealClock()
	}
	if random == nil {
		random = NewRandomSource()
	}
	if speaker == nil {
		speaker = speech.Silent()
	}
	in := application.NewInstruments(tel, paymentService)
	outcomes := in.Counter(observability.MPaymentOutcomes)
	return &Simulator{
		cfg:       cfg.withDefaults(),
		clock:     clock,
		random:    random,
		recorder:  recorder,
		publisher: publisher,
		speaker:   speaker,
		in:        in,
		succeeded: outcomes.Bind(observability.L("outcome", "success")),
		failed:    outcomes.Bind(observability.L("outcome", "failure")),
		session:   dompay.NewSession(clock.Now()),
	}
}

var _ application.UseCase[dompay.Request, *Result] = (*Simulator)(nil)

// Execute lets the simulator serve as an application.UseCase.
func (s *Simulator) Execute(ctx context.Context, req dompay.Request) (*Result, error) {
	return s.Submit(ctx, req)
}

// Submit validates req, holds the payment in processing for the configured
// delay and then resolves it. Only a success is written to the ledger. The
// simulator returns to ready after the reset delay unless a newer submission
// has started by then.
func (s *Simulator) Submit(ctx context.Context, req dompay.Request) (_ *Result, err error) {
	ctx, run := s.in.Start(ctx, "payment.submit", "SubmitPayment",
		attribute.String("payment.recipient", req.Recipient),
	)
	defer func() { run.End(err) }()

	v, err := req.Validate()
	if err != nil {
		run.Fail("VALIDATION_FAILED")
		return nil, err
	}
	run.With(
		observability.F("recipient", v.Recipient),
		observability.F("amount", v.Amount),
	)

	gen, err := s.begin(v)
	if err != nil {
		run.Fail("IN_FLIGHT")
		return nil, err
	}
	s.publishStatus(ctx, run.Logger(), dompay.StatusProcessing)

	select {
	case <-s.clock.After(s.cfg.ProcessingDelay):
	case <-ctx.Done():
		s.abandon(gen)
		s.publishStatus(context.WithoutCancel(ctx), run.Logger(), dompay.StatusReady)
		run.Fail("CANCELED")
		return nil, ctx.Err()
	}

	success := s.random.Float64() < s.cfg.SuccessRate
	result := &Result{}
	if success {
		tx, recErr := s.recorder.RecordPayment(ctx, v.Description, v.Amount)
		if recErr != nil {
			success = false
			err = fmt.Errorf("payment: record transaction: %w", recErr)
			run.Fail("RECORD_FAILED")
		}
		result.Transaction = tx
	}

	status, display := s.resolve(gen, success, v)
	result.Status, result.Display = status, display

	outcome, spoken, counter := "success", spokenSuccess, s.succeeded
	if !success {
		outcome, spoken, counter = "failure", spokenFailure, s.failed
		if err == nil {
			run.Status("DECLINED")
		}
	}
	counter.Add(1)
	run.Span().AddEvent("payment.resolved", trace.WithAttributes(attribute.String("payment.outcome", outcome)))
	run.With(observability.F("payment_outcome", outcome))

	s.publishStatus(ctx, run.Logger(), status)
	if spkErr := s.speaker.Speak(ctx, spoken); spkErr != nil {
		run.Logger().Warn("speak_failed", observability.F("error", spkErr.Error()))
	}
	return result, err
}

// Status returns the current state with its display text.
func (s *Simulator) Status() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.session.Status()
	return Snapshot{
		Status:    status,
		Recipient: s.session.Recipient,
		Amount:    s.session.Amount,
		Display:   dompay.DisplayFor(status, s.session.Recipient, s.session.Amount),
		UpdatedAt: s.session.UpdatedAt,
	}
}

// Close cancels a pending reset.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Simulator) begin(v dompay.Validated) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Submit(v, s.clock.Now()); err != nil {
		if errors.Is(err, dompay.ErrInFlight) {
			return 0, ErrPaymentInFlight
		}
		return 0, err
	}
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.generation++
	return s.generation, nil
}

func (s *Simulator) abandon(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.session.Reset(s.clock.Now())
	}
}

func (s *Simulator) resolve(gen uint64, success bool, v dompay.Validated) (dompay.Status, dompay.Display) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == gen {
		_ = s.session.Resolve(success, s.clock.Now())
		s.resetTimer = s.clock.AfterFunc(s.cfg.ResetDelay, func() { s.reset(gen) })
	}
	status := dompay.StatusFailure
	if success {
		status = dompay.StatusSuccess
	}
	return status, dompay.DisplayFor(status, v.Recipient, v.Amount)
}

func (s *Simulator) reset(gen uint64) {
	s.mu.Lock()
	if s.generation != gen || s.session.Status() == dompay.StatusProcessing {
		s.mu.Unlock()
		return
	}
	s.session.Reset(s.clock.Now())
	s.resetTimer = nil
	s.mu.Unlock()

	s.publishStatus(context.Background(), s.in.Logger(), dompay.StatusReady)
}

func (s *Simulator) publishStatus(ctx context.Context, logger observability.Logger, status dompay.Status) {
	_ = application.Publish(ctx, s.publisher, logger, dompay.NewStatusChangedEvent(status, s.clock.Now()))
}
