//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "backoffice-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 101 exists"
	StateProductMissing  = "no product with id 404"
	StateStockAvailable  = "product 101 stocked at store 11"
	StateStockDepleted   = "product 101 out of stock at store 11"
)

const (
	ExistingProductID int64 = 101
	MissingProductID  int64 = 404
	ExistingStoreID   int64 = 11
)

const (
	exampleProductName = "Pact Espresso Beans"
	exampleProductSKU  = "SKU-PACT-ESP"
	exampleEmail       = "pact.shopper@example.com"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload provides stable test data for product interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":       ExistingProductID,
		"name":     exampleProductName,
		"category": "coffee",
		"price":    12.50,
		"sku":      exampleProductSKU,
	}
}

// ExampleOrderPayload provides stable test data for placement interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"customerEmail": exampleEmail,
		"storeId":       ExistingStoreID,
		"lines": []map[string]any{
			{"productId": ExistingProductID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
