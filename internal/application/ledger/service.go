package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const ledgerService = "ledger-service"

// RecordCommand describes a new ledger line. A zero Date means now.
type RecordCommand struct {
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Kind        domledger.Kind   `json:"type"`
	Status      domledger.Status `json:"status"`
	Date        time.Time        `json:"date"`
}

type Service struct {
	repo      domledger.Repository
	ids       application.IDGenerator
	clock     application.Clock
	loc       *time.Location
	publisher domoutbox.Publisher
	in        application.Instruments
}

// NewService builds the ledger. loc decides where "today" starts and ends;
// nil means time.Local.
func NewService(
	repo domledger.Repository,
	ids application.IDGenerator,
	clock application.Clock,
	loc *time.Location,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *Service {
	if clock == nil {
		clock = application.SystemClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:      repo,
		ids:       ids,
		clock:     clock,
		loc:       loc,
		publisher: publisher,
		in:        application.NewInstruments(tel, ledgerService),
	}
}

// Record prepends a transaction and signals the view.
func (s *Service) Record(ctx context.Context, cmd RecordCommand) (_ *domledger.Transaction, err error) {
	ctx, run := s.in.Start(ctx, "ledger.record", "RecordTransaction",
		attribute.String("transaction.type", string(cmd.Kind)),
		attribute.Float64("transaction.amount", cmd.Amount),
	)
	defer func() { run.End(err) }()

	now := s.clock.Now()
	date := cmd.Date
	if date.IsZero() {
		date = now
	}
	tx, err := domledger.New(s.ids.NewID(), cmd.Description, cmd.Amount, cmd.Kind, cmd.Status, date)
	if err != nil {
		run.Fail("INVALID_TRANSACTION")
		return nil, err
	}
	run.With(observability.F("transaction_id", tx.ID))

	if err = s.repo.Prepend(ctx, tx); err != nil {
		run.Fail("PERSIST_FAILED")
		return nil, fmt.Errorf("ledger: prepend: %w", err)
	}

	_ = application.Publish(ctx, s.publisher, run.Logger(), domledger.NewRecordedEvent(tx, now))
	return tx, nil
}

// RecordPayment stores a completed payment. It satisfies the payment
// simulator's recorder port.
func (s *Service) RecordPayment(ctx context.Context, description string, amount float64) (*domledger.Transaction, error) {
	return s.Record(ctx, RecordCommand{
		Description: description,
		Amount:      amount,
		Kind:        domledger.KindPayment,
		Status:      domledger.StatusCompleted,
	})
}

func (s *Service) List(ctx context.Context) ([]domledger.Transaction, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	return txs, nil
}

// Filter returns the transactions inside the window, newest first.
func (s *Service) Filter(ctx context.Context, w domledger.Window) (_ []domledger.Transaction, err error) {
	ctx, run := s.in.Start(ctx, "ledger.filter", "FilterTransactions",
		attribute.String("filter.window", string(w)),
	)
	defer func() { run.End(err) }()

	txs, err := s.repo.List(ctx)
	if err != nil {
		run.Fail("LOAD_FAILED")
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	out := domledger.Filter(txs, w, s.clock.Now().In(s.loc))
	run.With(observability.F("matches", len(out)))
	return out, nil
}
