package mapper

import (
	"github.com/retailops/backoffice/internal/domains/customers/domain"
)

// Customer is the HTTP representation of a customer record.
type Customer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// FromDomainCustomer maps a domain customer into the transport representation.
func FromDomainCustomer(customer *domain.Customer) Customer {
	return Customer{ID: customer.ID, Email: customer.Email, Name: customer.Name}
}
