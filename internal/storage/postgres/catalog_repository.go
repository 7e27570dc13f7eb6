package postgres

import (
	"context"
	"fmt"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, name, category, unit_price_cents, available_quantity, track_stock, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		item.ID,
		item.Name,
		item.Category,
		item.UnitPriceCents,
		item.AvailableQuantity,
		item.TrackStock,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	const query = `
SELECT id, name, category, unit_price_cents, available_quantity, track_stock, created_at
FROM items
WHERE id = $1`

	var it domain.Item
	err := r.pool.QueryRow(ctx, query, itemID).
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

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	const query = `
SELECT id, name, category, unit_price_cents, available_quantity, track_stock, created_at
FROM items
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.UnitPriceCents, &it.AvailableQuantity, &it.TrackStock, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate items: %w", rows.Err())
	}
	return items, nil
}

// AdjustQuantity applies an administrative correction. Negative deltas go
// through the same non-negative guard as reservations.
func (r *CatalogRepository) AdjustQuantity(ctx context.Context, itemID string, delta int) error {
	const stmt = `
UPDATE items
SET available_quantity = available_quantity + $2
WHERE id = $1 AND available_quantity + $2 >= 0`

	tag, err := r.pool.Exec(ctx, stmt, itemID, delta)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isCheckViolation(err) {
			return domain.ErrStockConflict
		}
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		const existsQuery = `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`
		var exists bool
		if err := r.pool.QueryRow(ctx, existsQuery, itemID).Scan(&exists); err != nil {
			return fmt.Errorf("check item: %w", err)
		}
		if !exists {
			return domain.ErrItemNotFound
		}
		return domain.ErrStockConflict
	}
	return nil
}

func (r *CatalogRepository) CreateClient(ctx context.Context, client domain.Client) error {
	const stmt = `
INSERT INTO clients (id, name, phone, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, client.ID, client.Name, client.Phone, client.CreatedAt)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	const query = `SELECT id, name, phone, created_at FROM clients ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate clients: %w", rows.Err())
	}
	return clients, nil
}
