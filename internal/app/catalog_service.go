package app

import (
	"context"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/clock"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/google/uuid"
)

type CatalogRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	AdjustQuantity(ctx context.Context, itemID string, delta int) error
	CreateClient(ctx context.Context, client domain.Client) error
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// CatalogService is the administrative surface for the item catalog and
// the client registry.
type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateItemInput struct {
	Name           string
	Category       string
	UnitPriceCents int
	Quantity       int
	TrackStock     bool
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	if in.Name == "" {
		return domain.Item{}, domain.ErrNameRequired
	}
	if in.UnitPriceCents < 0 {
		return domain.Item{}, domain.ErrInvalidAmount
	}
	if in.Quantity < 0 {
		return domain.Item{}, domain.ErrInvalidQuantity
	}

	item := domain.Item{
		ID:                uuid.NewString(),
		Name:              in.Name,
		Category:          in.Category,
		UnitPriceCents:    in.UnitPriceCents,
		AvailableQuantity: in.Quantity,
		TrackStock:        in.TrackStock,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	if itemID == "" {
		return domain.Item{}, domain.ErrInvalidID
	}
	return s.repo.GetItem(ctx, itemID)
}

func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

// AdjustQuantity applies a restock or correction; the storage guard keeps
// the resulting quantity non-negative.
func (s *CatalogService) AdjustQuantity(ctx context.Context, itemID string, delta int) error {
	if itemID == "" {
		return domain.ErrInvalidID
	}
	if delta == 0 {
		return domain.ErrInvalidQuantity
	}
	return s.repo.AdjustQuantity(ctx, itemID, delta)
}

type RegisterClientInput struct {
	Name  string
	Phone string
}

func (s *CatalogService) RegisterClient(ctx context.Context, in RegisterClientInput) (domain.Client, error) {
	if in.Name == "" {
		return domain.Client{}, domain.ErrNameRequired
	}

	client := domain.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *CatalogService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.ListClients(ctx)
}
