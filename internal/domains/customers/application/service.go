package application

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/customers/domain"
	"github.com/retailops/backoffice/internal/domains/customers/ports"
)

// Service exposes the customer bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ResolveByEmail returns the customer for the address, creating a record on
// first contact. Losing the create race against a concurrent writer is treated
// as "someone else created it" and resolved by a second lookup, so retries for
// the same email never produce duplicates.
func (s *Service) ResolveByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return Resolve(ctx, s.repo, email)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// Resolve is the get-or-create primitive shared with the order placement unit
// of work, which runs it against transaction-scoped repositories.
func Resolve(ctx context.Context, repo ports.Resolver, email string) (*domain.Customer, error) {
	probe := domain.Customer{}
	if err := probe.SetEmail(email); err != nil {
		return nil, err
	}
	existing, err := repo.GetByEmail(ctx, probe.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	created, err := repo.Create(ctx, &domain.Customer{Email: probe.Email})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, ports.ErrEmailTaken) {
		return repo.GetByEmail(ctx, probe.Email)
	}
	return nil, err
}

var _ ports.Service = (*Service)(nil)
