package app

import (
	"context"
	"testing"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleService_RecordPayment(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clientID := "client-1"

	makeSvc := func(events ...domain.Event) (*LifecycleService, *fakeLifecycleRepo) {
		repo := newFakeLifecycleRepo(events, nil, nil)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)
		return svc, repo
	}

	t.Run("payment confirms a reserved event", func(t *testing.T) {
		svc, repo := makeSvc(domain.Event{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusReserved})

		payment, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			EventID:     "event-1",
			ClientID:    clientID,
			AmountCents: 5000,
			Method:      "cash",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, payment.ID)
		assert.Equal(t, now, payment.CreatedAt)
		assert.Equal(t, domain.EventStatusConfirmed, repo.events["event-1"].Status)
		assert.Len(t, repo.payments, 1)
	})

	t.Run("repeated payments keep confirmed and append rows", func(t *testing.T) {
		svc, repo := makeSvc(domain.Event{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusConfirmed})

		for i := 0; i < 2; i++ {
			_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
				EventID:     "event-1",
				ClientID:    clientID,
				AmountCents: 2500,
				Method:      "card",
			})
			require.NoError(t, err)
		}

		assert.Equal(t, domain.EventStatusConfirmed, repo.events["event-1"].Status)
		assert.Len(t, repo.payments, 2)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := makeSvc()
		_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			EventID: "missing", ClientID: clientID, AmountCents: 100, Method: "cash",
		})
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("blocked events take no payments", func(t *testing.T) {
		svc, _ := makeSvc(domain.Event{ID: "event-1", Status: domain.EventStatusBlocked})
		_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			EventID: "event-1", ClientID: clientID, AmountCents: 100, Method: "cash",
		})
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("client mismatch", func(t *testing.T) {
		svc, repo := makeSvc(domain.Event{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusReserved})
		_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			EventID: "event-1", ClientID: "client-2", AmountCents: 100, Method: "cash",
		})
		require.ErrorIs(t, err, domain.ErrClientMismatch)
		assert.Empty(t, repo.payments)
		assert.Equal(t, domain.EventStatusReserved, repo.events["event-1"].Status)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _ := makeSvc(domain.Event{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusReserved})
		_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
			EventID: "event-1", ClientID: clientID, AmountCents: 0, Method: "cash",
		})
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestLifecycleService_MarkFulfilled(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	clientID := "client-1"

	t.Run("fulfillment restores stock exactly once", func(t *testing.T) {
		repo := newFakeLifecycleRepo(
			[]domain.Event{{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusConfirmed}},
			[]domain.LineItem{{ID: "line-1", EventID: "event-1", ItemID: "item-1", Quantity: 5}},
			map[string]*fakeStock{"item-1": {quantity: 0, tracked: true}},
		)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)

		require.NoError(t, svc.MarkFulfilled(context.Background(), "event-1"))
		assert.Equal(t, 5, repo.stock["item-1"].quantity)
		assert.Equal(t, domain.EventStatusCompleted, repo.events["event-1"].Status)

		err := svc.MarkFulfilled(context.Background(), "event-1")
		require.ErrorIs(t, err, domain.ErrAlreadyFulfilled)
		assert.Equal(t, 5, repo.stock["item-1"].quantity, "stock must not be restored twice")
	})

	t.Run("reserved events can be fulfilled directly", func(t *testing.T) {
		repo := newFakeLifecycleRepo(
			[]domain.Event{{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusReserved}},
			[]domain.LineItem{{ID: "line-1", EventID: "event-1", ItemID: "item-1", Quantity: 2}},
			map[string]*fakeStock{"item-1": {quantity: 3, tracked: true}},
		)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)

		require.NoError(t, svc.MarkFulfilled(context.Background(), "event-1"))
		assert.Equal(t, 5, repo.stock["item-1"].quantity)
	})

	t.Run("untracked items are not restored", func(t *testing.T) {
		repo := newFakeLifecycleRepo(
			[]domain.Event{{ID: "event-1", ClientID: &clientID, Status: domain.EventStatusConfirmed}},
			[]domain.LineItem{{ID: "line-1", EventID: "event-1", ItemID: "item-1", Quantity: 4}},
			map[string]*fakeStock{"item-1": {quantity: 0, tracked: false}},
		)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)

		require.NoError(t, svc.MarkFulfilled(context.Background(), "event-1"))
		assert.Equal(t, 0, repo.stock["item-1"].quantity)
	})

	t.Run("blocked events cannot be fulfilled", func(t *testing.T) {
		repo := newFakeLifecycleRepo(
			[]domain.Event{{ID: "event-1", Status: domain.EventStatusBlocked}}, nil, nil)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)

		err := svc.MarkFulfilled(context.Background(), "event-1")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		repo := newFakeLifecycleRepo(nil, nil, nil)
		svc := NewLifecycleService(repo, clock.NewFixed(now), nil)

		err := svc.MarkFulfilled(context.Background(), "missing")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

type fakeStock struct {
	quantity int
	tracked  bool
}

type fakeLifecycleRepo struct {
	events   map[string]*domain.Event
	lines    []domain.LineItem
	stock    map[string]*fakeStock
	payments []domain.Payment
}

func newFakeLifecycleRepo(events []domain.Event, lines []domain.LineItem, stock map[string]*fakeStock) *fakeLifecycleRepo {
	m := make(map[string]*domain.Event, len(events))
	for i := range events {
		e := events[i]
		m[e.ID] = &e
	}
	if stock == nil {
		stock = map[string]*fakeStock{}
	}
	return &fakeLifecycleRepo{events: m, lines: lines, stock: stock}
}

func (f *fakeLifecycleRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeLifecycleRepo) GetEventForUpdate(_ context.Context, eventID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return *e, nil
}

func (f *fakeLifecycleRepo) CreatePayment(_ context.Context, payment domain.Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeLifecycleRepo) UpdateEventStatus(_ context.Context, eventID string, status domain.EventStatus) error {
	e, ok := f.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeLifecycleRepo) ListLineItems(_ context.Context, eventID string) ([]domain.LineItem, error) {
	var out []domain.LineItem
	for _, line := range f.lines {
		if line.EventID == eventID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (f *fakeLifecycleRepo) RestoreStock(_ context.Context, itemID string, quantity int) error {
	if s, ok := f.stock[itemID]; ok && s.tracked {
		s.quantity += quantity
	}
	return nil
}
