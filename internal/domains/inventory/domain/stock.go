package domain

import "errors"

var (
	ErrInvalidProduct   = errors.New("product id must be greater than zero")
	ErrInvalidStore     = errors.New("store id must be greater than zero")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// StockLevel is the quantity on hand for one (product, store) pair. Quantity
// never drops below zero, including under concurrent reservations.
type StockLevel struct {
	ProductID int64
	StoreID   int64
	Quantity  int32
}

// NewStockLevel validates and constructs a stock row.
func NewStockLevel(productID, storeID int64, quantity int32) (*StockLevel, error) {
	level := &StockLevel{ProductID: productID, StoreID: storeID, Quantity: quantity}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// Validate enforces invariants on the row.
func (s *StockLevel) Validate() error {
	if s.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if s.StoreID <= 0 {
		return ErrInvalidStore
	}
	if s.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// SetQuantity replaces the on-hand quantity.
func (s *StockLevel) SetQuantity(quantity int32) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.Quantity = quantity
	return nil
}
