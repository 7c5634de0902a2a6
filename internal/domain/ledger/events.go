package ledger

import "time"

// RecordedEvent tells the view layer the transaction list must be re-rendered.
type RecordedEvent struct {
	TransactionID string    `json:"transactionId"`
	Kind          Kind      `json:"type"`
	Amount        float64   `json:"amount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (RecordedEvent) EventName() string { return "ledger.changed" }

func NewRecordedEvent(tx *Transaction, now time.Time) RecordedEvent {
	return RecordedEvent{
		TransactionID: tx.ID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		OccurredAt:    now.UTC(),
	}
}
