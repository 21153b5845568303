package application

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/stores/domain"
	"github.com/retailops/backoffice/internal/domains/stores/ports"
)

// Service orchestrates the store directory use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, store)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Store, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
