package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/retailops/backoffice/internal/domains/reviews/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory review store used by tests and the dev profile.
type Repository struct {
	mu      sync.RWMutex
	reviews map[int64]*domain.Review
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{reviews: map[int64]*domain.Review{}}
}

func (r *Repository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.reviews[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *Repository) ListByProduct(_ context.Context, productID int64) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := []*domain.Review{}
	for _, review := range r.reviews {
		if review.ProductID == productID {
			clone := *review
			matches = append(matches, &clone)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}
