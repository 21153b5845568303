package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/retailops/backoffice/internal/domains/customers/domain"
	"github.com/retailops/backoffice/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer adapter enforcing email uniqueness the
// way the Postgres unique index does.
type Repository struct {
	mu      sync.RWMutex
	byID    map[int64]*domain.Customer
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{byID: map[int64]*domain.Customer{}, byEmail: map[string]int64{}}
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalize(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	key := normalize(clone.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return nil, ports.ErrEmailTaken
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.byID[clone.ID] = &clone
	r.byEmail[key] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, normalize(customer.Email))
	delete(r.byID, id)
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
