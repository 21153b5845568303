package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
)

var (
	_ ports.Repository    = (*Repository)(nil)
	_ ports.OrderRecorder = (*Repository)(nil)
)

// Repository is an in-memory order store used by tests and the dev profile.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextID     int64
	nextLineID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Record(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	for i := range clone.Lines {
		r.nextLineID++
		clone.Lines[i].ID = r.nextLineID
		clone.Lines[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *Repository) ListByStore(_ context.Context, storeID int64) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.StoreID == storeID }), nil
}

func (r *Repository) list(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := []*domain.Order{}
	for _, order := range r.orders {
		if keep(order) {
			matches = append(matches, cloneOrder(order))
		}
	}
	return matches
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = append([]domain.Line{}, order.Lines...)
	return &clone
}
