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

type CalendarRepository struct {
	pool *pgxpool.Pool
}

func NewCalendarRepository(pool *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{pool: pool}
}

func (r *CalendarRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CalendarRepository) FindBlockedEvent(ctx context.Context, date time.Time) (*domain.Event, error) {
	const query = `
SELECT id, client_id, event_date, start_time, end_time, status, total_cents, created_at
FROM events
WHERE event_date = $1 AND status = 'blocked'`

	var e domain.Event
	var status string
	err := r.queryRow(ctx, query, date).
		Scan(&e.ID, &e.ClientID, &e.EventDate, &e.StartTime, &e.EndTime, &status, &e.TotalCents, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find blocked event: %w", err)
	}
	e.Status = domain.EventStatus(status)
	return &e, nil
}

func (r *CalendarRepository) CreateEvent(ctx context.Context, event domain.Event) error {
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
		// uq_events_blocked_date: a concurrent block for the same date won.
		if isUniqueViolation(err) {
			return domain.ErrDateBlocked
		}
		return fmt.Errorf("create blocked event: %w", err)
	}
	return nil
}

func (r *CalendarRepository) DeleteBlockedEvent(ctx context.Context, date time.Time) error {
	const stmt = `DELETE FROM events WHERE event_date = $1 AND status = 'blocked'`

	tag, err := r.exec(ctx, stmt, date)
	if err != nil {
		return fmt.Errorf("delete blocked event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDateNotBlocked
	}
	return nil
}

func (r *CalendarRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CalendarRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
