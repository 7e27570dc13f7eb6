package app

import (
	"context"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/stream"
	"github.com/google/uuid"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetClient(ctx context.Context, clientID string) (domain.Client, error)
	BlockedDateExists(ctx context.Context, date time.Time) (bool, error)
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	DecrementStock(ctx context.Context, itemID string, quantity int) error
	CreateEvent(ctx context.Context, event domain.Event) error
	CreateLineItems(ctx context.Context, lines []domain.LineItem) error
}

type ReservationService struct {
	repo      ReservationRepository
	clock     clock.Clock
	publisher stream.Publisher
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, pub stream.Publisher) *ReservationService {
	if pub == nil {
		pub = stream.NopPublisher()
	}
	return &ReservationService{
		repo:      repo,
		clock:     clk,
		publisher: pub,
	}
}

type ReservationLine struct {
	ItemID         string
	Quantity       int
	UnitPriceCents int
}

type CreateReservationInput struct {
	ClientID  string
	EventDate time.Time
	StartTime string
	EndTime   string
	Lines     []ReservationLine
}

func (in CreateReservationInput) validate() error {
	if in.ClientID == "" {
		return domain.ErrInvalidID
	}
	if in.EventDate.IsZero() || in.StartTime == "" || in.EndTime == "" || in.StartTime >= in.EndTime {
		return domain.ErrInvalidDateRange
	}
	if len(in.Lines) == 0 {
		return domain.ErrItemsRequired
	}
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return domain.ErrInvalidID
		}
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if line.UnitPriceCents < 0 {
			return domain.ErrInvalidAmount
		}
	}
	return nil
}

// CreateReservation validates stock for every requested line, decrements it
// and persists the event plus its line items in one transaction. Any
// shortfall or failure rolls the whole reservation back; no partial
// decrement survives.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	now := s.clock.Now()
	var result domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetClient(txCtx, in.ClientID); err != nil {
			return err
		}

		blocked, err := s.repo.BlockedDateExists(txCtx, in.EventDate)
		if err != nil {
			return err
		}
		if blocked {
			return domain.ErrDateBlocked
		}

		total := 0
		for _, line := range in.Lines {
			item, err := s.repo.GetItemForUpdate(txCtx, line.ItemID)
			if err != nil {
				return err
			}
			if item.TrackStock {
				if item.AvailableQuantity < line.Quantity {
					return &domain.InsufficientStockError{
						ItemName:  item.Name,
						Available: item.AvailableQuantity,
					}
				}
				if err := s.repo.DecrementStock(txCtx, line.ItemID, line.Quantity); err != nil {
					return err
				}
			}
			total += line.Quantity * line.UnitPriceCents
		}

		clientID := in.ClientID
		event := domain.Event{
			ID:         uuid.NewString(),
			ClientID:   &clientID,
			EventDate:  in.EventDate,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			Status:     domain.EventStatusReserved,
			TotalCents: total,
			CreatedAt:  now,
		}
		if err := s.repo.CreateEvent(txCtx, event); err != nil {
			return err
		}

		lines := make([]domain.LineItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			lines = append(lines, domain.LineItem{
				ID:             uuid.NewString(),
				EventID:        event.ID,
				ItemID:         line.ItemID,
				Quantity:       line.Quantity,
				UnitPriceCents: line.UnitPriceCents,
			})
		}
		if err := s.repo.CreateLineItems(txCtx, lines); err != nil {
			return err
		}

		result = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	payloadLines := make([]stream.LineQty, 0, len(in.Lines))
	for _, line := range in.Lines {
		payloadLines = append(payloadLines, stream.LineQty{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	s.publisher.Publish(ctx, stream.TopicReservationCreated, stream.EventReservationCreated, result.ID,
		stream.ReservationCreatedPayload{
			EventID:    result.ID,
			ClientID:   in.ClientID,
			EventDate:  in.EventDate.Format("2006-01-02"),
			TotalCents: result.TotalCents,
			Lines:      payloadLines,
		})

	return result, nil
}
