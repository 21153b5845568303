package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptyCategory = errors.New("product category is required")
	ErrEmptySKU      = errors.New("product sku is required")
	ErrInvalidPrice  = errors.New("product price must not be negative")
)

// Product is a catalog entry. Order placement reads the price at reservation
// time; later price changes never touch recorded orders.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    float64
	SKU      string
}

// NewProduct validates the invariants and builds a catalog entry.
func NewProduct(id int64, name, category string, price float64, sku string) (*Product, error) {
	product := &Product{ID: id}
	if err := product.Rename(name); err != nil {
		return nil, err
	}
	if err := product.Recategorize(category); err != nil {
		return nil, err
	}
	if err := product.Reprice(price); err != nil {
		return nil, err
	}
	if err := product.SetSKU(sku); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

func (p *Product) Recategorize(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	p.Category = category
	return nil
}

func (p *Product) Reprice(price float64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// SetSKU stores the trimmed stock-keeping unit. Uniqueness is enforced by the
// storage layer.
func (p *Product) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrEmptySKU
	}
	p.SKU = sku
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.Recategorize(p.Category); err != nil {
		return err
	}
	if err := p.Reprice(p.Price); err != nil {
		return err
	}
	return p.SetSKU(p.SKU)
}
