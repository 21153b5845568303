package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/domains/catalog/ports"
	"github.com/retailops/backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type storedProduct struct {
	product   domain.Product
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory catalog adapter enforcing SKU uniqueness.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*storedProduct
	skuIndex map[string]int64
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*storedProduct{}, skuIndex: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ownerID, ok := r.skuIndex[clone.SKU]; ok && ownerID != clone.ID {
		return nil, ports.ErrSKUConflict
	}
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	existing, ok := r.products[clone.ID]
	if ok {
		delete(r.skuIndex, existing.product.SKU)
		existing.product = clone
		existing.updatedAt = now
	} else {
		existing = &storedProduct{product: clone, createdAt: now, updatedAt: now}
		r.products[clone.ID] = existing
	}
	r.skuIndex[clone.SKU] = clone.ID
	return existing.toProjection(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return stored.toProjection(), nil
}

func (r *Repository) List(_ context.Context) ([]*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.ProductProjection, 0, len(r.products))
	for _, stored := range r.products {
		list = append(list, stored.toProjection())
	}
	return list, nil
}

func (r *Repository) Search(_ context.Context, filter ports.Filter) ([]*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var allowed map[int64]struct{}
	if filter.IDs != nil {
		allowed = make(map[int64]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			allowed[id] = struct{}{}
		}
	}
	var matches []*ports.ProductProjection
	for id, stored := range r.products {
		if allowed != nil {
			if _, ok := allowed[id]; !ok {
				continue
			}
		}
		if filter.Category != "" && stored.product.Category != filter.Category {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(stored.product.Name), strings.ToLower(filter.Name)) {
			continue
		}
		matches = append(matches, stored.toProjection())
	}
	if matches == nil {
		matches = []*ports.ProductProjection{}
	}
	return matches, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.skuIndex, stored.product.SKU)
	delete(r.products, id)
	return nil
}

func (s *storedProduct) toProjection() *ports.ProductProjection {
	clone := s.product
	return &ports.ProductProjection{
		Entity:   &clone,
		Metadata: projection.Metadata{CreatedAt: s.createdAt, UpdatedAt: s.updatedAt},
	}
}
