package app

import (
	"context"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/google/uuid"
)

type CalendarRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindBlockedEvent(ctx context.Context, date time.Time) (*domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) error
	DeleteBlockedEvent(ctx context.Context, date time.Time) error
}

// CalendarService manages administrative date blocks: client-less events
// that occupy a calendar date and take part in no stock or payment logic.
type CalendarService struct {
	repo  CalendarRepository
	clock clock.Clock
}

func NewCalendarService(repo CalendarRepository, clk clock.Clock) *CalendarService {
	return &CalendarService{
		repo:  repo,
		clock: clk,
	}
}

// BlockDate is idempotent: blocking an already blocked date returns the
// existing block.
func (s *CalendarService) BlockDate(ctx context.Context, date time.Time) (domain.Event, error) {
	if date.IsZero() {
		return domain.Event{}, domain.ErrInvalidDateRange
	}

	now := s.clock.Now()
	var result domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindBlockedEvent(txCtx, date)
		if err != nil {
			return err
		}
		if existing != nil {
			result = *existing
			return nil
		}

		block := domain.Event{
			ID:        uuid.NewString(),
			ClientID:  nil,
			EventDate: date,
			StartTime: "00:00",
			EndTime:   "23:59",
			Status:    domain.EventStatusBlocked,
			CreatedAt: now,
		}
		if err := s.repo.CreateEvent(txCtx, block); err != nil {
			return err
		}
		result = block
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return result, nil
}

func (s *CalendarService) UnblockDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return domain.ErrInvalidDateRange
	}
	return s.repo.DeleteBlockedEvent(ctx, date)
}
