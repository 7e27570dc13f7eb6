package domain

import "time"

type EventStatus string

const (
	EventStatusReserved  EventStatus = "reserved"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusBlocked   EventStatus = "blocked"
)

var validNext = map[EventStatus]map[EventStatus]bool{
	EventStatusReserved:  {EventStatusConfirmed: true, EventStatusCompleted: true},
	EventStatusConfirmed: {EventStatusCompleted: true},
	EventStatusCompleted: {},
	EventStatusBlocked:   {},
}

// CanTransition reports whether the status state machine allows from -> to.
func CanTransition(from, to EventStatus) bool {
	return validNext[from][to]
}

// Event is a client's booking of a date/time slot together with a set of
// line items. A nil ClientID denotes an administrative date-block, not a
// real booking; blocked events carry no lines and a zero total.
type Event struct {
	ID         string
	ClientID   *string
	EventDate  time.Time
	StartTime  string
	EndTime    string
	Status     EventStatus
	TotalCents int
	CreatedAt  time.Time
}

// LineItem belongs to exactly one Event and snapshots the unit price at
// booking time; it is immutable after creation.
type LineItem struct {
	ID             string
	EventID        string
	ItemID         string
	Quantity       int
	UnitPriceCents int
}
