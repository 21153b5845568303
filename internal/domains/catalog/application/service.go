package application

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo  ports.Repository
	stock ports.StockIndex
}

// NewService wires the catalog service. The stock index is optional; without
// it, store-scoped searches return the unscoped result and deletes skip
// inventory cleanup.
func NewService(repo ports.Repository, stock ports.StockIndex) *Service {
	return &Service{repo: repo, stock: stock}
}

func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

// UpdateProduct overwrites an existing catalog entry.
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ports.ProductProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*ports.ProductProjection, error) {
	return s.repo.List(ctx)
}

// Search filters by name substring and/or category, optionally scoped to the
// products a store actually stocks.
func (s *Service) Search(ctx context.Context, input ports.SearchInput) ([]*ports.ProductProjection, error) {
	filter := ports.Filter{Name: input.Name, Category: input.Category}
	if input.StoreID > 0 && s.stock != nil {
		ids, err := s.stock.ProductIDsByStore(ctx, input.StoreID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []*ports.ProductProjection{}, nil
		}
		filter.IDs = ids
	}
	return s.repo.Search(ctx, filter)
}

// DeleteProduct removes the catalog entry together with its inventory rows,
// mirroring the back-office rule that stock never outlives its product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if s.stock != nil {
		if err := s.stock.DeleteByProduct(ctx, id); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
