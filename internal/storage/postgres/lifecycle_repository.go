package postgres

import (
	"context"
	"fmt"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LifecycleRepository struct {
	pool *pgxpool.Pool
}

func NewLifecycleRepository(pool *pgxpool.Pool) *LifecycleRepository {
	return &LifecycleRepository{pool: pool}
}

func (r *LifecycleRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *LifecycleRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, client_id, event_date, start_time, end_time, status, total_cents, created_at
FROM events
WHERE id = $1
FOR UPDATE`

	var e domain.Event
	var status string
	err := r.queryRow(ctx, query, eventID).
		Scan(&e.ID, &e.ClientID, &e.EventDate, &e.StartTime, &e.EndTime, &status, &e.TotalCents, &e.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}

func (r *LifecycleRepository) CreatePayment(ctx context.Context, payment domain.Payment) error {
	const stmt = `
INSERT INTO payments (id, event_id, amount_cents, method, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt, payment.ID, payment.EventID, payment.AmountCents, payment.Method, payment.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *LifecycleRepository) UpdateEventStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	const stmt = `UPDATE events SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, eventID, status)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *LifecycleRepository) ListLineItems(ctx context.Context, eventID string) ([]domain.LineItem, error) {
	const query = `
SELECT id, event_id, item_id, quantity, unit_price_cents
FROM line_items
WHERE event_id = $1
ORDER BY id`

	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var lines []domain.LineItem
	for rows.Next() {
		var line domain.LineItem
		if err := rows.Scan(&line.ID, &line.EventID, &line.ItemID, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate line items: %w", rows.Err())
	}
	return lines, nil
}

// RestoreStock is the inverse of the reservation decrement and skips items
// that are not stock-tracked.
func (r *LifecycleRepository) RestoreStock(ctx context.Context, itemID string, quantity int) error {
	const stmt = `
UPDATE items
SET available_quantity = available_quantity + $2
WHERE id = $1 AND track_stock`

	if _, err := r.exec(ctx, stmt, itemID, quantity); err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

func (r *LifecycleRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LifecycleRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *LifecycleRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
