package domain

import "time"

// Payment is an append-only record against an event. An event may
// accumulate several payments; the first one confirms the reservation.
type Payment struct {
	ID          string
	EventID     string
	AmountCents int
	Method      string
	CreatedAt   time.Time
}
