package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/cache"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
)

type AdminRepository interface {
	CountClients(ctx context.Context) (int, error)
	CountEventsByStatus(ctx context.Context) (map[domain.EventStatus]int, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]domain.MonthlyBucket, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.Item, error)
}

const (
	defaultLowStockFloor  = 10
	defaultLowStockMedium = 50
	revenueMonths         = 6
)

// AdminService serves the read-only dashboard aggregations, with a
// read-through Redis cache in front of Postgres. A nil cache disables
// caching entirely.
type AdminService struct {
	repo           AdminRepository
	clock          clock.Clock
	cache          *cache.Cache
	lowStockFloor  int
	lowStockMedium int
}

type AdminServiceOption func(*AdminService)

// WithLowStockThresholds overrides the low/medium stock boundaries.
func WithLowStockThresholds(floor, medium int) AdminServiceOption {
	return func(s *AdminService) {
		if floor > 0 {
			s.lowStockFloor = floor
		}
		if medium > floor {
			s.lowStockMedium = medium
		}
	}
}

func WithCache(c *cache.Cache) AdminServiceOption {
	return func(s *AdminService) {
		s.cache = c
	}
}

func NewAdminService(repo AdminRepository, clk clock.Clock, opts ...AdminServiceOption) *AdminService {
	svc := &AdminService{
		repo:           repo,
		clock:          clk,
		lowStockFloor:  defaultLowStockFloor,
		lowStockMedium: defaultLowStockMedium,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type Stats struct {
	Clients  int                        `json:"clients"`
	Events   int                        `json:"events"`
	ByStatus map[domain.EventStatus]int `json:"by_status"`
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	if b, ok := s.cache.Get(ctx, cache.KeyStats); ok {
		var cached Stats
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	clients, err := s.repo.CountClients(ctx)
	if err != nil {
		return Stats{}, err
	}
	byStatus, err := s.repo.CountEventsByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}
	stats := Stats{
		Clients:  clients,
		Events:   total,
		ByStatus: byStatus,
	}

	if b, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, cache.KeyStats, b, cache.TTLDashboard)
	}
	return stats, nil
}

// MonthlyRevenue returns the per-month event and revenue histogram for the
// current month and the five before it.
func (s *AdminService) MonthlyRevenue(ctx context.Context) ([]domain.MonthlyBucket, error) {
	if b, ok := s.cache.Get(ctx, cache.KeyMonthlyRevenue); ok {
		var cached []domain.MonthlyBucket
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	now := s.clock.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(revenueMonths - 1), 0)

	buckets, err := s.repo.MonthlyRevenue(ctx, since)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(buckets); err == nil {
		s.cache.Set(ctx, cache.KeyMonthlyRevenue, b, cache.TTLDashboard)
	}
	return buckets, nil
}

func (s *AdminService) LowStock(ctx context.Context) ([]domain.StockAlert, error) {
	if b, ok := s.cache.Get(ctx, cache.KeyLowStock); ok {
		var cached []domain.StockAlert
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.ListLowStock(ctx, s.lowStockMedium)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.StockAlert, 0, len(items))
	for _, item := range items {
		level := domain.StockLevelMedium
		if item.AvailableQuantity < s.lowStockFloor {
			level = domain.StockLevelLow
		}
		alerts = append(alerts, domain.StockAlert{Item: item, Level: level})
	}

	if b, err := json.Marshal(alerts); err == nil {
		s.cache.Set(ctx, cache.KeyLowStock, b, cache.TTLDashboard)
	}
	return alerts, nil
}
