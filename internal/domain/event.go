package domain

import "time"

type EventType string

const (
	EventPurchase EventType = "purchase"
	EventGamble   EventType = "gamble"
	EventJackpot  EventType = "jackpot"
	EventCheckin  EventType = "checkin"
	EventItemUsed EventType = "item_used"
)

// Event is pushed to the dashboard live feed after a successful economy operation.
type Event struct {
	Type   EventType `json:"type"`
	UserID string    `json:"user_id"`
	Amount int64     `json:"amount"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}
