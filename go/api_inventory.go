package backofficeserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryhttpmapper "github.com/retailops/backoffice/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
)

// InventoryAPI wires HTTP transport with the inventory bounded context service.
type InventoryAPI struct {
	service inventoryports.Service
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
func NewInventoryAPI(service inventoryports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Post /v1/inventory
// Create a stock row for a (product, store) pair.
func (api *InventoryAPI) CreateStock(c *gin.Context) {
	var payload inventoryhttpmapper.StockLevel
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	level, err := inventoryhttpmapper.ToDomainStockLevel(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateStock(c.Request.Context(), level)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inventoryhttpmapper.FromDomainStockLevel(created))
}

// Put /v1/inventory/:storeId/:productId
// Overwrite the quantity of an existing stock row.
func (api *InventoryAPI) UpdateQuantity(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload struct {
		Quantity int32 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateQuantity(c.Request.Context(), productID, storeID, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevel(updated))
}

// Get /v1/inventory/:storeId/:productId/availability
// Report whether the row still covers the requested quantity.
func (api *InventoryAPI) CheckAvailability(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	quantity := int64(1)
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		quantity = parsed
	}
	available, err := api.service.CheckAvailability(c.Request.Context(), productID, storeID, int32(quantity))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}
