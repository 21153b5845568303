package backofficeserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/retailops/backoffice/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
)

// ProductsAPI wires HTTP transport with the catalog bounded context service.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Post /v1/products
// Add a product to the catalog.
func (api *ProductsAPI) AddProduct(c *gin.Context) {
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := cataloghttpmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.AddProduct(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromProjection(saved))
}

// Put /v1/products/:productId
// Update an existing catalog entry.
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	product, err := cataloghttpmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjection(updated))
}

// Get /v1/products/:productId
// Find product by ID.
func (api *ProductsAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjection(product))
}

// Get /v1/products
// Search the catalog by name, category, and/or stocking store.
func (api *ProductsAPI) SearchProducts(c *gin.Context) {
	input := catalogports.SearchInput{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("storeId"); raw != "" {
		storeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		input.StoreID = storeID
	}
	result, err := api.service.Search(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProjectionList(result))
}

// Delete /v1/products/:productId
// Remove a product together with its inventory rows.
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
