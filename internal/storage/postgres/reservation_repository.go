package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ReservationRepository) GetClient(ctx context.Context, clientID string) (domain.Client, error) {
	const query = `SELECT id, name, phone, created_at FROM clients WHERE id = $1`

	var c domain.Client
	err := r.queryRow(ctx, query, clientID).Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Client{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ReservationRepository) BlockedDateExists(ctx context.Context, date time.Time) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM events WHERE event_date = $1 AND status = 'blocked')`

	var exists bool
	if err := r.queryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blocked date: %w", err)
	}
	return exists, nil
}

// GetItemForUpdate locks the item row for the rest of the transaction so
// the availability read and the decrement see the same quantity.
func (r *ReservationRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
	const query = `
SELECT id, name, category, unit_price_cents, available_quantity, track_stock, created_at
FROM items
WHERE id = $1
FOR UPDATE`

	var it domain.Item
	err := r.queryRow(ctx, query, itemID).
		Scan(&it.ID, &it.Name, &it.Category, &it.UnitPriceCents, &it.AvailableQuantity, &it.TrackStock, &it.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// DecrementStock subtracts quantity only while the result stays
// non-negative; zero rows affected means the guard refused the update.
func (r *ReservationRepository) DecrementStock(ctx context.Context, itemID string, quantity int) error {
	const stmt = `
UPDATE items
SET available_quantity = available_quantity - $2
WHERE id = $1 AND available_quantity >= $2`

	tag, err := r.exec(ctx, stmt, itemID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrStockConflict
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockConflict
	}
	return nil
}

func (r *ReservationRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, client_id, event_date, start_time, end_time, status, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.ClientID,
		event.EventDate,
		event.StartTime,
		event.EndTime,
		event.Status,
		event.TotalCents,
		event.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *ReservationRepository) CreateLineItems(ctx context.Context, lines []domain.LineItem) error {
	const stmt = `
INSERT INTO line_items (id, event_id, item_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)`

	for _, line := range lines {
		_, err := r.exec(ctx, stmt, line.ID, line.EventID, line.ItemID, line.Quantity, line.UnitPriceCents)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("create line item: %w", err)
		}
	}
	return nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
