package application

import (
	"context"
	"errors"
	"sort"

	customersapplication "github.com/retailops/backoffice/internal/domains/customers/application"
	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
)

// maxConflictRetries bounds how often a placement is re-run after losing a
// storage-level race before the shortfall is surfaced to the caller.
const maxConflictRetries = 3

var _ ports.Service = (*Service)(nil)

// Service orchestrates order placement: one unit of work resolves the
// customer, verifies the store, reserves every line and records the order, or
// leaves no trace at all.
type Service struct {
	uow  ports.UnitOfWork
	repo ports.Repository
}

func NewService(uow ports.UnitOfWork, repo ports.Repository) *Service {
	return &Service{uow: uow, repo: repo}
}

func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.OrderConfirmation, error) {
	lines, err := normalizeLines(input.Lines)
	if err != nil {
		return nil, invalidRequest(err)
	}
	if input.StoreID <= 0 {
		return nil, invalidRequest(domain.ErrInvalidStore)
	}
	probe := customersdomain.Customer{}
	if err := probe.SetEmail(input.CustomerEmail); err != nil {
		return nil, invalidRequest(err)
	}

	var confirmation *ports.OrderConfirmation
	run := func(ctx context.Context, repos ports.Repositories) error {
		placed, err := s.placeOnce(ctx, repos, probe.Email, input.StoreID, lines)
		if err != nil {
			return err
		}
		confirmation = placed
		return nil
	}

	var lastConflict *inventoryports.ReservationConflictError
	var lastErr error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err := s.uow.Do(ctx, run)
		if err == nil {
			return confirmation, nil
		}
		lastErr = err
		var conflict *inventoryports.ReservationConflictError
		if errors.As(err, &conflict) {
			lastConflict = conflict
			continue
		}
		// Losing the customer insert race rolls back the whole unit of work,
		// so the next attempt resolves the now-existing row instead.
		if errors.Is(err, customersports.ErrEmailTaken) {
			continue
		}
		return nil, err
	}
	if lastConflict != nil {
		return nil, &inventoryports.InsufficientStockError{
			ProductID: lastConflict.ProductID,
			Requested: lastConflict.Requested,
			Available: lastConflict.Available,
		}
	}
	return nil, lastErr
}

// placeOnce executes a single placement attempt on transaction-scoped
// repositories. Any error aborts the unit of work.
func (s *Service) placeOnce(ctx context.Context, repos ports.Repositories, email string, storeID int64, lines []ports.LineInput) (*ports.OrderConfirmation, error) {
	customer, err := customersapplication.Resolve(ctx, repos.Customers(), email)
	if err != nil {
		return nil, err
	}
	if _, err := repos.Stores().GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	orderLines := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		product, err := repos.Catalog().GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if err := repos.Inventory().Reserve(ctx, storeID, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
		orderLines = append(orderLines, domain.Line{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}
	order, err := domain.NewOrder(customer.ID, storeID, orderLines)
	if err != nil {
		return nil, err
	}
	recorded, err := repos.Orders().Record(ctx, order)
	if err != nil {
		return nil, err
	}
	return toConfirmation(recorded), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// normalizeLines validates the request, merges duplicate products and orders
// the result by product id so concurrent placements acquire row locks in the
// same sequence.
func normalizeLines(lines []ports.LineInput) ([]ports.LineInput, error) {
	if len(lines) == 0 {
		return nil, domain.ErrNoLines
	}
	merged := make(map[int64]int32, len(lines))
	for _, line := range lines {
		if err := domain.ValidateLine(line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
		merged[line.ProductID] += line.Quantity
	}
	normalized := make([]ports.LineInput, 0, len(merged))
	for productID, quantity := range merged {
		normalized = append(normalized, ports.LineInput{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i].ProductID < normalized[j].ProductID })
	return normalized, nil
}

func toConfirmation(order *domain.Order) *ports.OrderConfirmation {
	return &ports.OrderConfirmation{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		StoreID:    order.StoreID,
		Total:      order.Total,
		CreatedAt:  order.CreatedAt,
		Lines:      append([]domain.Line{}, order.Lines...),
	}
}
