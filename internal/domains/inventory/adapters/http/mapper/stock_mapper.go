package mapper

import (
	"github.com/retailops/backoffice/internal/domains/inventory/domain"
)

// StockLevel is the HTTP representation of one (product, store) stock row.
type StockLevel struct {
	ProductID int64 `json:"productId"`
	StoreID   int64 `json:"storeId"`
	Quantity  int32 `json:"quantity"`
}

// ToDomainStockLevel maps a transport stock level into the domain value.
func ToDomainStockLevel(input StockLevel) (*domain.StockLevel, error) {
	return domain.NewStockLevel(input.ProductID, input.StoreID, input.Quantity)
}

// FromDomainStockLevel maps a domain stock level into the transport representation.
func FromDomainStockLevel(level *domain.StockLevel) StockLevel {
	return StockLevel{ProductID: level.ProductID, StoreID: level.StoreID, Quantity: level.Quantity}
}

// FromDomainStockLevelList maps a slice of domain stock levels.
func FromDomainStockLevelList(list []*domain.StockLevel) []StockLevel {
	result := make([]StockLevel, 0, len(list))
	for _, level := range list {
		result = append(result, FromDomainStockLevel(level))
	}
	return result
}
