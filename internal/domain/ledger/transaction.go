package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidAmount      = errors.New("ledger: amount must be zero or greater")
	ErrDescriptionMissing = errors.New("ledger: description is required")
	ErrInvalidWindow      = errors.New("ledger: unknown filter window")
	ErrInvalidStatus      = errors.New("ledger: unknown transaction status")
)

type Kind string

const (
	KindPayment Kind = "payment"
	KindRefund  Kind = "refund"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Transaction is one ledger line as stored under the "transactions" record.
type Transaction struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Kind        Kind      `json:"type"`
	Status      Status    `json:"status"`
	Date        time.Time `json:"date"`
}

// New builds a transaction, defaulting kind to payment and status to completed.
func New(id, description string, amount float64, kind Kind, status Status, date time.Time) (*Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionMissing
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if kind == "" {
		kind = KindPayment
	}
	if status == "" {
		status = StatusCompleted
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return &Transaction{
		ID:          id,
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Status:      status,
		Date:        date.UTC(),
	}, nil
}
