package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
	"github.com/retailops/backoffice/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

type pairKey struct {
	productID int64
	storeID   int64
}

// Repository is an in-memory stock-level adapter. The mutex makes Reserve a
// true test-and-decrement, so concurrent reservations can never drive a row
// below zero.
type Repository struct {
	mu     sync.RWMutex
	levels map[pairKey]int32
}

func NewRepository() *Repository {
	return &Repository{levels: map[pairKey]int32{}}
}

func (r *Repository) Create(_ context.Context, level *domain.StockLevel) (*domain.StockLevel, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	key := pairKey{productID: level.ProductID, storeID: level.StoreID}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.levels[key]; ok {
		return nil, ports.ErrAlreadyExists
	}
	r.levels[key] = level.Quantity
	clone := *level
	return &clone, nil
}

func (r *Repository) UpdateQuantity(_ context.Context, productID, storeID int64, quantity int32) (*domain.StockLevel, error) {
	if quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	key := pairKey{productID: productID, storeID: storeID}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.levels[key]; !ok {
		return nil, fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	r.levels[key] = quantity
	return &domain.StockLevel{ProductID: productID, StoreID: storeID, Quantity: quantity}, nil
}

func (r *Repository) GetByProductAndStore(_ context.Context, productID, storeID int64) (*domain.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quantity, ok := r.levels[pairKey{productID: productID, storeID: storeID}]
	if !ok {
		return nil, fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	return &domain.StockLevel{ProductID: productID, StoreID: storeID, Quantity: quantity}, nil
}

func (r *Repository) ListByStore(_ context.Context, storeID int64) ([]*domain.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var levels []*domain.StockLevel
	for key, quantity := range r.levels {
		if key.storeID == storeID {
			levels = append(levels, &domain.StockLevel{ProductID: key.productID, StoreID: key.storeID, Quantity: quantity})
		}
	}
	return levels, nil
}

func (r *Repository) ProductIDsByStore(_ context.Context, storeID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []int64
	for key := range r.levels {
		if key.storeID == storeID {
			ids = append(ids, key.productID)
		}
	}
	return ids, nil
}

func (r *Repository) DeleteByProduct(_ context.Context, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.levels {
		if key.productID == productID {
			delete(r.levels, key)
		}
	}
	return nil
}

// Reserve decrements the row only while it still covers the request. Check and
// decrement happen under one lock acquisition.
func (r *Repository) Reserve(_ context.Context, storeID, productID int64, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrNegativeQuantity
	}
	key := pairKey{productID: productID, storeID: storeID}
	r.mu.Lock()
	defer r.mu.Unlock()
	available, ok := r.levels[key]
	if !ok {
		return fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	if available < quantity {
		return &ports.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
	}
	r.levels[key] = available - quantity
	return nil
}

// Restock returns previously reserved units to the row.
func (r *Repository) Restock(_ context.Context, storeID, productID int64, quantity int32) error {
	key := pairKey{productID: productID, storeID: storeID}
	r.mu.Lock()
	defer r.mu.Unlock()
	available, ok := r.levels[key]
	if !ok {
		return fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	r.levels[key] = available + quantity
	return nil
}
