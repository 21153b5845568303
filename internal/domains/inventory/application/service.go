package application

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
	"github.com/retailops/backoffice/internal/domains/inventory/ports"
)

// Service orchestrates stock-keeping use cases for the back office.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateStock registers a new (product, store) stock row. A second row for the
// same pair is a conflict.
func (s *Service) CreateStock(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error) {
	if level == nil {
		return nil, errors.New("stock level is nil")
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, level)
}

// UpdateQuantity replaces the on-hand quantity of an existing row.
func (s *Service) UpdateQuantity(ctx context.Context, productID, storeID int64, quantity int32) (*domain.StockLevel, error) {
	probe := domain.StockLevel{ProductID: productID, StoreID: storeID, Quantity: quantity}
	if err := probe.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateQuantity(ctx, productID, storeID, quantity)
}

// ListByStore returns every stock row held by a store.
func (s *Service) ListByStore(ctx context.Context, storeID int64) ([]*domain.StockLevel, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// CheckAvailability reports whether the store can cover the requested quantity.
// A missing row counts as unavailable rather than an error.
func (s *Service) CheckAvailability(ctx context.Context, productID, storeID int64, quantity int32) (bool, error) {
	if quantity <= 0 {
		return false, domain.ErrNegativeQuantity
	}
	level, err := s.repo.GetByProductAndStore(ctx, productID, storeID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return level.Quantity >= quantity, nil
}

var _ ports.Service = (*Service)(nil)
