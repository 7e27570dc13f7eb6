package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CountClients(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (r *AdminRepository) CountEventsByStatus(ctx context.Context) (map[domain.EventStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM events GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count events by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EventStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.EventStatus(status)] = n
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate status counts: %w", rows.Err())
	}
	return counts, nil
}

// MonthlyRevenue aggregates event counts and confirmed revenue per month,
// from `since` onward. Blocked rows never count; revenue only comes from
// events that went through payment.
func (r *AdminRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]domain.MonthlyBucket, error) {
	const query = `
SELECT date_trunc('month', event_date)::date AS month,
       COUNT(*) FILTER (WHERE status <> 'blocked') AS events,
       COALESCE(SUM(total_cents) FILTER (WHERE status IN ('confirmed', 'completed')), 0) AS revenue_cents
FROM events
WHERE event_date >= $1
GROUP BY month
ORDER BY month ASC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var buckets []domain.MonthlyBucket
	for rows.Next() {
		var b domain.MonthlyBucket
		if err := rows.Scan(&b.Month, &b.Events, &b.RevenueCents); err != nil {
			return nil, fmt.Errorf("scan month bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate month buckets: %w", rows.Err())
	}
	return buckets, nil
}

func (r *AdminRepository) ListLowStock(ctx context.Context, threshold int) ([]domain.Item, error) {
	const query = `
SELECT id, name, category, unit_price_cents, available_quantity, track_stock, created_at
FROM items
WHERE track_stock AND available_quantity < $1
ORDER BY available_quantity ASC, name ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.UnitPriceCents, &it.AvailableQuantity, &it.TrackStock, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate low stock items: %w", rows.Err())
	}
	return items, nil
}
