package domain

import (
	"errors"
	"time"
)

var (
	ErrNoLines         = errors.New("order must contain at least one line")
	ErrInvalidProduct  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStore    = errors.New("store id must be greater than zero")
	ErrInvalidCustomer = errors.New("customer reference is required")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)

// Line is one reserved (product, quantity) entry of an order. UnitPrice is
// captured from the catalog at reservation time and never recomputed.
type Line struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice float64
}

// Order is the order header aggregate together with its lines. Once recorded
// it is immutable.
type Order struct {
	ID         int64
	CustomerID int64
	StoreID    int64
	Total      float64
	CreatedAt  time.Time
	Lines      []Line
}

// NewOrder builds an order from reserved lines, computing the total.
func NewOrder(customerID, storeID int64, lines []Line) (*Order, error) {
	order := &Order{
		CustomerID: customerID,
		StoreID:    storeID,
		Lines:      append([]Line{}, lines...),
	}
	order.Total = TotalOf(order.Lines)
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// TotalOf sums quantity times captured unit price over the given lines.
func TotalOf(lines []Line) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerID <= 0 {
		return ErrInvalidCustomer
	}
	if o.StoreID <= 0 {
		return ErrInvalidStore
	}
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if err := ValidateLine(line.ProductID, line.Quantity); err != nil {
			return err
		}
		if line.UnitPrice < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}

// ValidateLine checks the (product, quantity) pair of a requested line.
func ValidateLine(productID int64, quantity int32) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
