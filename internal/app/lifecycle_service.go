package app

import (
	"context"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/stream"
	"github.com/google/uuid"
)

type LifecycleRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	CreatePayment(ctx context.Context, payment domain.Payment) error
	UpdateEventStatus(ctx context.Context, eventID string, status domain.EventStatus) error
	ListLineItems(ctx context.Context, eventID string) ([]domain.LineItem, error)
	RestoreStock(ctx context.Context, itemID string, quantity int) error
}

// LifecycleService drives the event status machine: payment confirms a
// reservation, fulfillment completes it and returns the reserved stock.
type LifecycleService struct {
	repo      LifecycleRepository
	clock     clock.Clock
	publisher stream.Publisher
}

func NewLifecycleService(repo LifecycleRepository, clk clock.Clock, pub stream.Publisher) *LifecycleService {
	if pub == nil {
		pub = stream.NopPublisher()
	}
	return &LifecycleService{
		repo:      repo,
		clock:     clk,
		publisher: pub,
	}
}

type RecordPaymentInput struct {
	EventID     string
	ClientID    string
	AmountCents int
	Method      string
}

// RecordPayment appends a payment row and moves a reserved event to
// confirmed. Repeated payments keep the event confirmed; every call still
// appends its own payment record.
func (s *LifecycleService) RecordPayment(ctx context.Context, in RecordPaymentInput) (domain.Payment, error) {
	if in.EventID == "" || in.ClientID == "" {
		return domain.Payment{}, domain.ErrInvalidID
	}
	if in.AmountCents <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var result domain.Payment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.Status == domain.EventStatusBlocked {
			return domain.ErrEventNotFound
		}
		if event.ClientID == nil || *event.ClientID != in.ClientID {
			return domain.ErrClientMismatch
		}

		payment := domain.Payment{
			ID:          uuid.NewString(),
			EventID:     in.EventID,
			AmountCents: in.AmountCents,
			Method:      in.Method,
			CreatedAt:   now,
		}
		if err := s.repo.CreatePayment(txCtx, payment); err != nil {
			return err
		}

		if event.Status == domain.EventStatusReserved {
			if err := s.repo.UpdateEventStatus(txCtx, in.EventID, domain.EventStatusConfirmed); err != nil {
				return err
			}
		}

		result = payment
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}

	s.publisher.Publish(ctx, stream.TopicPaymentRecorded, stream.EventPaymentRecorded, in.EventID,
		stream.PaymentRecordedPayload{
			EventID:     in.EventID,
			PaymentID:   result.ID,
			AmountCents: result.AmountCents,
			Method:      result.Method,
		})

	return result, nil
}

// MarkFulfilled completes an event and restores the reserved quantity of
// every stock-tracked line item, exactly once. A second call returns
// ErrAlreadyFulfilled without touching stock.
func (s *LifecycleService) MarkFulfilled(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidID
	}

	var restored []stream.LineQty

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.Status == domain.EventStatusBlocked {
			return domain.ErrEventNotFound
		}
		if event.Status == domain.EventStatusCompleted {
			return domain.ErrAlreadyFulfilled
		}
		if !domain.CanTransition(event.Status, domain.EventStatusCompleted) {
			return domain.ErrAlreadyFulfilled
		}

		lines, err := s.repo.ListLineItems(txCtx, eventID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := s.repo.RestoreStock(txCtx, line.ItemID, line.Quantity); err != nil {
				return err
			}
			restored = append(restored, stream.LineQty{ItemID: line.ItemID, Quantity: line.Quantity})
		}

		return s.repo.UpdateEventStatus(txCtx, eventID, domain.EventStatusCompleted)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, stream.TopicEventFulfilled, stream.EventFulfilled, eventID,
		stream.FulfilledPayload{
			EventID:  eventID,
			Restored: restored,
		})

	return nil
}
