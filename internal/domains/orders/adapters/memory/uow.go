package memory

import (
	"context"
	"sync"

	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork coordinates the shared in-memory repositories. Placements are
// serialized by a single mutex and partial writes are undone by compensation:
// reservations are restocked and a customer created by the failed attempt is
// removed again.
type UnitOfWork struct {
	mu        sync.Mutex
	customers customersports.Repository
	stores    storesports.Repository
	catalog   catalogports.Repository
	inventory inventoryports.Repository
	orders    *Repository
}

func NewUnitOfWork(
	customers customersports.Repository,
	stores storesports.Repository,
	catalog catalogports.Repository,
	inventory inventoryports.Repository,
	orders *Repository,
) *UnitOfWork {
	return &UnitOfWork{
		customers: customers,
		stores:    stores,
		catalog:   catalog,
		inventory: inventory,
		orders:    orders,
	}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	session := &session{uow: u}
	if err := fn(ctx, session); err != nil {
		session.rollback(ctx)
		return err
	}
	return nil
}

type reservation struct {
	storeID   int64
	productID int64
	quantity  int32
}

// session tracks the writes of one attempt so they can be compensated.
type session struct {
	uow             *UnitOfWork
	createdCustomer int64
	reservations    []reservation
}

func (s *session) rollback(ctx context.Context) {
	for i := len(s.reservations) - 1; i >= 0; i-- {
		res := s.reservations[i]
		_ = s.uow.inventory.Restock(ctx, res.storeID, res.productID, res.quantity)
	}
	if s.createdCustomer != 0 {
		_ = s.uow.customers.Delete(ctx, s.createdCustomer)
	}
}

func (s *session) Customers() ports.CustomerResolver { return &trackingResolver{session: s} }
func (s *session) Stores() ports.StoreLookup         { return s.uow.stores }
func (s *session) Catalog() ports.ProductCatalog     { return &catalogReader{repo: s.uow.catalog} }
func (s *session) Inventory() ports.InventoryReserver {
	return &trackingReserver{session: s}
}
func (s *session) Orders() ports.OrderRecorder { return s.uow.orders }

type trackingResolver struct {
	session *session
}

func (t *trackingResolver) GetByEmail(ctx context.Context, email string) (*customersdomain.Customer, error) {
	return t.session.uow.customers.GetByEmail(ctx, email)
}

func (t *trackingResolver) Create(ctx context.Context, customer *customersdomain.Customer) (*customersdomain.Customer, error) {
	created, err := t.session.uow.customers.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	t.session.createdCustomer = created.ID
	return created, nil
}

type trackingReserver struct {
	session *session
}

func (t *trackingReserver) Reserve(ctx context.Context, storeID, productID int64, quantity int32) error {
	if err := t.session.uow.inventory.Reserve(ctx, storeID, productID, quantity); err != nil {
		return err
	}
	t.session.reservations = append(t.session.reservations, reservation{storeID: storeID, productID: productID, quantity: quantity})
	return nil
}

type catalogReader struct {
	repo catalogports.Repository
}

func (c *catalogReader) GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	projection, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projection.Entity, nil
}
