package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	"github.com/retailops/backoffice/internal/domains/customers/domain"
	"github.com/retailops/backoffice/internal/domains/customers/ports"
)

func TestResolveByEmail_CreatesOnFirstContact(t *testing.T) {
	svc := NewService(customersmemory.NewRepository())

	customer, err := svc.ResolveByEmail(context.Background(), "shopper@example.com")
	require.NoError(t, err)
	require.NotZero(t, customer.ID)
	require.Equal(t, "shopper@example.com", customer.Email)
}

func TestResolveByEmail_IsIdempotent(t *testing.T) {
	svc := NewService(customersmemory.NewRepository())

	first, err := svc.ResolveByEmail(context.Background(), "shopper@example.com")
	require.NoError(t, err)
	second, err := svc.ResolveByEmail(context.Background(), "  shopper@example.com ")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
}

func TestResolveByEmail_RejectsBadAddress(t *testing.T) {
	svc := NewService(customersmemory.NewRepository())

	_, err := svc.ResolveByEmail(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrEmptyEmail)

	_, err = svc.ResolveByEmail(context.Background(), "no-at-sign")
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

// racingResolver simulates losing the insert race: the first lookup misses,
// the insert reports the email as taken, and the second lookup finds the row a
// concurrent writer committed.
type racingResolver struct {
	lookups int
	winner  *domain.Customer
}

func (r *racingResolver) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, ports.ErrNotFound
	}
	clone := *r.winner
	return &clone, nil
}

func (r *racingResolver) Create(context.Context, *domain.Customer) (*domain.Customer, error) {
	return nil, ports.ErrEmailTaken
}

func TestResolve_LostInsertRaceFallsBackToLookup(t *testing.T) {
	winner := &domain.Customer{ID: 7, Email: "shopper@example.com"}
	resolver := &racingResolver{winner: winner}

	customer, err := Resolve(context.Background(), resolver, "shopper@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(7), customer.ID)
	require.Equal(t, 2, resolver.lookups)
}
