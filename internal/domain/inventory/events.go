package inventory

import "time"

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangedEvent tells the view layer the inventory list must be re-rendered.
type ChangedEvent struct {
	Action     string    `json:"action"`
	ItemID     string    `json:"itemId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (ChangedEvent) EventName() string { return "inventory.changed" }

func NewChangedEvent(action, itemID string, now time.Time) ChangedEvent {
	return ChangedEvent{
		Action:     action,
		ItemID:     itemID,
		OccurredAt: now.UTC(),
	}
}
