package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined api endpoints.
type Routes map[string][]Route

// ApiHandleFunctions groups the API handlers served by the router.
type ApiHandleFunctions struct {
	OrdersAPI    OrdersAPI
	ProductsAPI  ProductsAPI
	StoresAPI    StoresAPI
	InventoryAPI InventoryAPI
	CustomersAPI CustomersAPI
	ReviewsAPI   ReviewsAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the defined routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, routes := range getRoutes(handleFunctions) {
		for _, route := range routes {
			if route.HandlerFunc == nil {
				route.HandlerFunc = DefaultHandleFunc
			}
			switch route.Method {
			case http.MethodGet:
				router.GET(route.Pattern, route.HandlerFunc)
			case http.MethodPost:
				router.POST(route.Pattern, route.HandlerFunc)
			case http.MethodPut:
				router.PUT(route.Pattern, route.HandlerFunc)
			case http.MethodPatch:
				router.PATCH(route.Pattern, route.HandlerFunc)
			case http.MethodDelete:
				router.DELETE(route.Pattern, route.HandlerFunc)
			}
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler attached.
var DefaultHandleFunc gin.HandlerFunc = func(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"OrdersAPI": {
			{
				Name:        "PlaceOrder",
				Method:      http.MethodPost,
				Pattern:     "/v1/orders",
				HandlerFunc: handleFunctions.OrdersAPI.PlaceOrder,
			},
			{
				Name:        "GetOrderById",
				Method:      http.MethodGet,
				Pattern:     "/v1/orders/:orderId",
				HandlerFunc: handleFunctions.OrdersAPI.GetOrderById,
			},
			{
				Name:        "ListOrders",
				Method:      http.MethodGet,
				Pattern:     "/v1/orders",
				HandlerFunc: handleFunctions.OrdersAPI.ListOrders,
			},
		},
		"ProductsAPI": {
			{
				Name:        "AddProduct",
				Method:      http.MethodPost,
				Pattern:     "/v1/products",
				HandlerFunc: handleFunctions.ProductsAPI.AddProduct,
			},
			{
				Name:        "SearchProducts",
				Method:      http.MethodGet,
				Pattern:     "/v1/products",
				HandlerFunc: handleFunctions.ProductsAPI.SearchProducts,
			},
			{
				Name:        "GetProductById",
				Method:      http.MethodGet,
				Pattern:     "/v1/products/:productId",
				HandlerFunc: handleFunctions.ProductsAPI.GetProductById,
			},
			{
				Name:        "UpdateProduct",
				Method:      http.MethodPut,
				Pattern:     "/v1/products/:productId",
				HandlerFunc: handleFunctions.ProductsAPI.UpdateProduct,
			},
			{
				Name:        "DeleteProduct",
				Method:      http.MethodDelete,
				Pattern:     "/v1/products/:productId",
				HandlerFunc: handleFunctions.ProductsAPI.DeleteProduct,
			},
		},
		"StoresAPI": {
			{
				Name:        "CreateStore",
				Method:      http.MethodPost,
				Pattern:     "/v1/stores",
				HandlerFunc: handleFunctions.StoresAPI.CreateStore,
			},
			{
				Name:        "ListStores",
				Method:      http.MethodGet,
				Pattern:     "/v1/stores",
				HandlerFunc: handleFunctions.StoresAPI.ListStores,
			},
			{
				Name:        "GetStoreById",
				Method:      http.MethodGet,
				Pattern:     "/v1/stores/:storeId",
				HandlerFunc: handleFunctions.StoresAPI.GetStoreById,
			},
			{
				Name:        "ListStoreInventory",
				Method:      http.MethodGet,
				Pattern:     "/v1/stores/:storeId/inventory",
				HandlerFunc: handleFunctions.StoresAPI.ListStoreInventory,
			},
		},
		"InventoryAPI": {
			{
				Name:        "CreateStock",
				Method:      http.MethodPost,
				Pattern:     "/v1/inventory",
				HandlerFunc: handleFunctions.InventoryAPI.CreateStock,
			},
			{
				Name:        "UpdateQuantity",
				Method:      http.MethodPut,
				Pattern:     "/v1/inventory/:storeId/:productId",
				HandlerFunc: handleFunctions.InventoryAPI.UpdateQuantity,
			},
			{
				Name:        "CheckAvailability",
				Method:      http.MethodGet,
				Pattern:     "/v1/inventory/:storeId/:productId/availability",
				HandlerFunc: handleFunctions.InventoryAPI.CheckAvailability,
			},
		},
		"CustomersAPI": {
			{
				Name:        "GetCustomerById",
				Method:      http.MethodGet,
				Pattern:     "/v1/customers/:customerId",
				HandlerFunc: handleFunctions.CustomersAPI.GetCustomerById,
			},
			{
				Name:        "ResolveCustomer",
				Method:      http.MethodPost,
				Pattern:     "/v1/customers/resolve",
				HandlerFunc: handleFunctions.CustomersAPI.ResolveCustomer,
			},
		},
		"ReviewsAPI": {
			{
				Name:        "CreateReview",
				Method:      http.MethodPost,
				Pattern:     "/v1/reviews",
				HandlerFunc: handleFunctions.ReviewsAPI.CreateReview,
			},
			{
				Name:        "GetReviewById",
				Method:      http.MethodGet,
				Pattern:     "/v1/reviews/:reviewId",
				HandlerFunc: handleFunctions.ReviewsAPI.GetReviewById,
			},
			{
				Name:        "ListProductReviews",
				Method:      http.MethodGet,
				Pattern:     "/v1/products/:productId/reviews",
				HandlerFunc: handleFunctions.ReviewsAPI.ListProductReviews,
			},
			{
				Name:        "DeleteReview",
				Method:      http.MethodDelete,
				Pattern:     "/v1/reviews/:reviewId",
				HandlerFunc: handleFunctions.ReviewsAPI.DeleteReview,
			},
		},
	}
}
