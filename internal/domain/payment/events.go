package payment

import "time"

// StatusChangedEvent tells the view layer to refresh the payment status panel.
type StatusChangedEvent struct {
	Status     Status    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (StatusChangedEvent) EventName() string { return "payment.status_changed" }

func NewStatusChangedEvent(status Status, now time.Time) StatusChangedEvent {
	return StatusChangedEvent{Status: status, OccurredAt: now.UTC()}
}
