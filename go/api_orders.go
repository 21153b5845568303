package backofficeserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/retailops/backoffice/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place an order atomically: reserve every line and record the order, or nothing.
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	var payload ordershttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := ordershttpmapper.ToPlaceOrderInput(payload)
	if key := c.GetHeader("Idempotency-Key"); key != "" && input.IdempotencyKey == "" {
		input.IdempotencyKey = key
	}
	confirmation, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromConfirmation(confirmation))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersports.OrderConfirmation, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /v1/orders/:orderId
// Load a recorded order with its lines.
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// Get /v1/orders
// List orders filtered by customer or store.
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		orders, err := api.service.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrderList(orders))
		return
	}
	if raw := c.Query("storeId"); raw != "" {
		storeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		orders, err := api.service.ListByStore(c.Request.Context(), storeID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrderList(orders))
		return
	}
	respondProblem(c, badRequestProblem("customerId or storeId query parameter is required"))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
