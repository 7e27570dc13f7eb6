package stream

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"testing"
)

func TestProducerPublishEnqueuesEnvelope(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "rental-api", 4, log.New(&strings.Builder{}, "", 0))

	p.Publish(context.Background(), TopicReservationCreated, EventReservationCreated, "event-1",
		ReservationCreatedPayload{EventID: "event-1", ClientID: "client-1", TotalCents: 7500})

	select {
	case msg := <-p.inbox:
		if msg.Topic != TopicReservationCreated {
			t.Fatalf("expected topic %s, got %s", TopicReservationCreated, msg.Topic)
		}
		if string(msg.Key) != "event-1" {
			t.Fatalf("expected partition key event-1, got %s", msg.Key)
		}

		var env Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.EventType != EventReservationCreated || env.EventVersion != 1 {
			t.Fatalf("unexpected envelope: %+v", env)
		}
		if env.Producer != "rental-api" || env.CorrelationID != "event-1" {
			t.Fatalf("unexpected envelope metadata: %+v", env)
		}

		var payload ReservationCreatedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.TotalCents != 7500 {
			t.Fatalf("expected total 7500, got %d", payload.TotalCents)
		}
	default:
		t.Fatal("expected a message in the inbox")
	}
}

func TestProducerPublishNeverBlocks(t *testing.T) {
	var buf strings.Builder
	p := NewProducer([]string{"localhost:9092"}, "rental-api", 1, log.New(&buf, "", 0))

	p.Publish(context.Background(), TopicPaymentRecorded, EventPaymentRecorded, "event-1",
		PaymentRecordedPayload{EventID: "event-1"})
	p.Publish(context.Background(), TopicPaymentRecorded, EventPaymentRecorded, "event-2",
		PaymentRecordedPayload{EventID: "event-2"})

	if len(p.inbox) != 1 {
		t.Fatalf("expected 1 buffered message, got %d", len(p.inbox))
	}
	if !strings.Contains(buf.String(), "dropping") {
		t.Fatalf("expected a drop warning, got %q", buf.String())
	}
}

func TestNopPublisherIsSafe(t *testing.T) {
	pub := NopPublisher()
	pub.Publish(context.Background(), TopicEventFulfilled, EventFulfilled, "event-1",
		FulfilledPayload{EventID: "event-1"})
}
