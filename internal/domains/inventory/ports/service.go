package ports

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
)

// Service exposes inventory use cases to adapters.
type Service interface {
	CreateStock(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error)
	UpdateQuantity(ctx context.Context, productID, storeID int64, quantity int32) (*domain.StockLevel, error)
	ListByStore(ctx context.Context, storeID int64) ([]*domain.StockLevel, error)
	CheckAvailability(ctx context.Context, productID, storeID int64, quantity int32) (bool, error)
}
