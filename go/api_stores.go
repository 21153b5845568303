package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventoryhttpmapper "github.com/retailops/backoffice/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	storeshttpmapper "github.com/retailops/backoffice/internal/domains/stores/adapters/http/mapper"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
)

// StoresAPI wires HTTP transport with the stores bounded context service. It
// also serves the store-scoped inventory listing.
type StoresAPI struct {
	service   storesports.Service
	inventory inventoryports.Service
}

// NewStoresAPI creates a StoresAPI backed by the provided services.
func NewStoresAPI(service storesports.Service, inventory inventoryports.Service) StoresAPI {
	return StoresAPI{service: service, inventory: inventory}
}

// Post /v1/stores
// Register a retail location.
func (api *StoresAPI) CreateStore(c *gin.Context) {
	var payload storeshttpmapper.Store
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	store, err := storeshttpmapper.ToDomainStore(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateStore(c.Request.Context(), store)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, storeshttpmapper.FromDomainStore(saved))
}

// Get /v1/stores/:storeId
// Find store by ID.
func (api *StoresAPI) GetStoreById(c *gin.Context) {
	id, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	store, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storeshttpmapper.FromDomainStore(store))
}

// Get /v1/stores
// List all retail locations.
func (api *StoresAPI) ListStores(c *gin.Context) {
	stores, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storeshttpmapper.FromDomainStoreList(stores))
}

// Get /v1/stores/:storeId/inventory
// List the stock rows held by one store.
func (api *StoresAPI) ListStoreInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	if _, err := api.service.GetByID(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	levels, err := api.inventory.ListByStore(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevelList(levels))
}
