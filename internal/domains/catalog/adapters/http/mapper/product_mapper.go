package mapper

import (
	"time"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/domains/catalog/ports"
)

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	SKU       string    `json:"sku"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// ToDomainProduct maps a transport product into the domain aggregate.
func ToDomainProduct(input Product) (*domain.Product, error) {
	return domain.NewProduct(input.ID, input.Name, input.Category, input.Price, input.SKU)
}

// FromProjection maps a projection into a transport product enriched with metadata.
func FromProjection(projection *ports.ProductProjection) Product {
	product := projection.Entity
	return Product{
		ID:        product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		SKU:       product.SKU,
		CreatedAt: projection.Metadata.CreatedAt,
		UpdatedAt: projection.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a slice of projections into transport products.
func FromProjectionList(list []*ports.ProductProjection) []Product {
	result := make([]Product, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}
