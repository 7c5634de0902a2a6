package payment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrValidation             = errors.New("payment: invalid request")
	ErrInFlight               = errors.New("payment: another payment is still processing")
	ErrInvalidStateTransition = errors.New("payment: invalid state transition")
)

// Status is the simulator's display state.
type Status string

const (
	StatusReady      Status = "ready"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailure    Status = "failure"
)

// Request is the payment form as submitted. Amount stays textual so that a
// missing field can be told apart from a zero.
type Request struct {
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Validated is a request that passed validation.
type Validated struct {
	Recipient   string
	Amount      float64
	Description string
}

func (r Request) Validate() (Validated, error) {
	recipient := strings.TrimSpace(r.Recipient)
	if recipient == "" {
		return Validated{}, fmt.Errorf("%w: recipient is required", ErrValidation)
	}
	raw := strings.TrimSpace(r.Amount)
	if raw == "" {
		return Validated{}, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Validated{}, fmt.Errorf("%w: amount %q is not a number", ErrValidation, raw)
	}
	if amount < 0 {
		return Validated{}, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	description := strings.TrimSpace(r.Description)
	if description == "" {
		description = "Payment to " + recipient
	}
	return Validated{Recipient: recipient, Amount: amount, Description: description}, nil
}
