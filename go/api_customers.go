package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customershttpmapper "github.com/retailops/backoffice/internal/domains/customers/adapters/http/mapper"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers bounded context service.
type CustomersAPI struct {
	service customersports.Service
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customersports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Get /v1/customers/:customerId
// Find customer by ID.
func (api *CustomersAPI) GetCustomerById(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customershttpmapper.FromDomainCustomer(customer))
}

// Post /v1/customers/resolve
// Return the customer for an email address, creating a record on first contact.
func (api *CustomersAPI) ResolveCustomer(c *gin.Context) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.ResolveByEmail(c.Request.Context(), payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customershttpmapper.FromDomainCustomer(customer))
}
