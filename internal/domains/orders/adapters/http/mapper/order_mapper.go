package mapper

import (
	"time"

	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
)

// OrderLineRequest is one requested line of an inbound order.
type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

// PlaceOrderRequest captures the inbound placement payload.
type PlaceOrderRequest struct {
	CustomerEmail  string             `json:"customerEmail"`
	StoreID        int64              `json:"storeId"`
	Lines          []OrderLineRequest `json:"lines"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty"`
}

// OrderLine is the HTTP representation of a recorded line.
type OrderLine struct {
	ID        int64   `json:"id,omitempty"`
	ProductID int64   `json:"productId"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is the HTTP representation of a recorded order.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customerId"`
	StoreID    int64       `json:"storeId"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
	Lines      []OrderLine `json:"lines"`
}

// ToPlaceOrderInput converts the transport payload into the application command.
func ToPlaceOrderInput(payload PlaceOrderRequest) ports.PlaceOrderInput {
	lines := make([]ports.LineInput, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		lines = append(lines, ports.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return ports.PlaceOrderInput{
		CustomerEmail:  payload.CustomerEmail,
		StoreID:        payload.StoreID,
		Lines:          lines,
		IdempotencyKey: payload.IdempotencyKey,
	}
}

// FromConfirmation maps a committed placement into the transport order.
func FromConfirmation(confirmation *ports.OrderConfirmation) Order {
	return Order{
		ID:         confirmation.OrderID,
		CustomerID: confirmation.CustomerID,
		StoreID:    confirmation.StoreID,
		Total:      confirmation.Total,
		CreatedAt:  confirmation.CreatedAt,
		Lines:      fromLines(confirmation.Lines),
	}
}

// FromDomainOrder maps a recorded order into the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	return Order{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		StoreID:    order.StoreID,
		Total:      order.Total,
		CreatedAt:  order.CreatedAt,
		Lines:      fromLines(order.Lines),
	}
}

// FromDomainOrderList maps a slice of recorded orders.
func FromDomainOrderList(list []*domain.Order) []Order {
	result := make([]Order, 0, len(list))
	for _, order := range list {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

func fromLines(lines []domain.Line) []OrderLine {
	result := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return result
}
