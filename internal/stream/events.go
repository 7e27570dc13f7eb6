package stream

import (
	"encoding/json"
	"time"
)

const (
	EventReservationCreated = "ReservationCreated"
	EventPaymentRecorded    = "PaymentRecorded"
	EventFulfilled          = "EventFulfilled"
)

const (
	TopicReservationCreated = "rental.reservation.created"
	TopicPaymentRecorded    = "rental.payment.recorded"
	TopicEventFulfilled     = "rental.event.fulfilled"
)

// Envelope wraps every published payload with routing metadata.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type LineQty struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type ReservationCreatedPayload struct {
	EventID    string    `json:"event_id"`
	ClientID   string    `json:"client_id"`
	EventDate  string    `json:"event_date"`
	TotalCents int       `json:"total_cents"`
	Lines      []LineQty `json:"lines"`
}

type PaymentRecordedPayload struct {
	EventID     string `json:"event_id"`
	PaymentID   string `json:"payment_id"`
	AmountCents int    `json:"amount_cents"`
	Method      string `json:"method"`
}

type FulfilledPayload struct {
	EventID  string    `json:"event_id"`
	Restored []LineQty `json:"restored"`
}

// PartitionKey keeps every message for one booking on the same partition so
// lifecycle events stay ordered.
func PartitionKey(eventID string) []byte { return []byte(eventID) }

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
