package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
)

var (
	ErrNotFound      = errors.New("no inventory for product at store")
	ErrAlreadyExists = errors.New("inventory already exists for product at store")
)

// InsufficientStockError reports that a reservation asked for more units than
// the row holds at commit time.
type InsufficientStockError struct {
	ProductID int64
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// ReservationConflictError signals the conditional decrement lost a
// storage-level race (serialization failure or deadlock) and may be retried.
type ReservationConflictError struct {
	ProductID int64
	Requested int32
	Available int32
}

func (e *ReservationConflictError) Error() string {
	return fmt.Sprintf("reservation conflict for product %d (requested %d)", e.ProductID, e.Requested)
}

// Repository persists stock levels keyed by (product, store).
type Repository interface {
	Create(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error)
	UpdateQuantity(ctx context.Context, productID, storeID int64, quantity int32) (*domain.StockLevel, error)
	GetByProductAndStore(ctx context.Context, productID, storeID int64) (*domain.StockLevel, error)
	ListByStore(ctx context.Context, storeID int64) ([]*domain.StockLevel, error)
	ProductIDsByStore(ctx context.Context, storeID int64) ([]int64, error)
	DeleteByProduct(ctx context.Context, productID int64) error

	// Reserve performs an atomic conditional decrement: the row's quantity is
	// reduced only if it still covers the requested amount at commit time.
	// Returns ErrNotFound (wrapped with the product id) when no row exists and
	// *InsufficientStockError on shortfall. Never leaves quantity negative.
	Reserve(ctx context.Context, storeID, productID int64, quantity int32) error

	// Restock adds units back to an existing row.
	Restock(ctx context.Context, storeID, productID int64, quantity int32) error
}
