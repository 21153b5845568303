package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retailops/backoffice/internal/domains/reviews/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&reviewRecord{})
	}
	return repo
}

type reviewRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	ProductID  int64     `gorm:"column:product_id;not null;index"`
	CustomerID int64     `gorm:"column:customer_id;not null;index"`
	Rating     int32     `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := reviewRecord{
		ProductID:  clone.ProductID,
		CustomerID: clone.CustomerID,
		Rating:     clone.Rating,
		Comment:    clone.Comment,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", id, ports.ErrNotFound)
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []reviewRecord
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, 0, len(records))
	for i := range records {
		reviews = append(reviews, records[i].toDomain())
	}
	return reviews, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&reviewRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}

func (r reviewRecord) toDomain() *domain.Review {
	return &domain.Review{
		ID:         r.ID,
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
