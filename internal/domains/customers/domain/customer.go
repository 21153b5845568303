package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyEmail   = errors.New("email is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is a shopper identified by a unique email address. A record is
// created on first contact (first order or review) and never deleted here.
type Customer struct {
	ID    int64
	Email string
	Name  string
}

// NewCustomer builds a customer ensuring the email invariant.
func NewCustomer(id int64, email, name string) (*Customer, error) {
	customer := &Customer{ID: id, Name: strings.TrimSpace(name)}
	if err := customer.SetEmail(email); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetEmail trims and validates the address.
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}

// DisplayName returns the name shown alongside reviews and orders.
func (c *Customer) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return c.Email
	}
	return c.Name
}

// Validate re-applies invariants for persistence.
func (c *Customer) Validate() error {
	return c.SetEmail(c.Email)
}
