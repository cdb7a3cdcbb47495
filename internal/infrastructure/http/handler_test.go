package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appCatalog "github.com/streamline-shop/streamline/internal/application/catalog"
	appOffer "github.com/streamline-shop/streamline/internal/application/offer"
	appOrder "github.com/streamline-shop/streamline/internal/application/order"
	"github.com/streamline-shop/streamline/internal/infrastructure/memory"
)

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func newTestRouter() http.Handler {
	catalogRepo := memory.NewCatalogRepository()
	offerRepo := memory.NewOfferRepository()
	orderRepo := memory.NewOrderRepository()
	idGen := &seqIDGenerator{}

	handler := NewHandler(
		appCatalog.NewService(catalogRepo, idGen),
		appOffer.NewService(offerRepo, idGen),
		appOrder.NewService(catalogRepo, orderRepo, idGen, nil, 0),
	)
	return handler.Router()
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func createItem(t *testing.T, router http.Handler, name string, price float64, stock int) map[string]any {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/items-management", map[string]any{
		"name": name, "category": "tools", "price": price, "stock": stock,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create item: status %d, body %s", rec.Code, rec.Body.String())
	}
	var item map[string]any
	decode(t, rec, &item)
	return item
}

func TestItemCRUDEndpoints(t *testing.T) {
	router := newTestRouter()

	created := createItem(t, router, "Widget", 9.99, 7)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("create response missing id: %v", created)
	}

	rec := do(t, router, http.MethodGet, "/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /items: status %d", rec.Code)
	}
	var items []map[string]any
	decode(t, rec, &items)
	if len(items) != 1 || items[0]["name"] != "Widget" {
		t.Fatalf("unexpected items: %v", items)
	}

	// Upsert with a stale id must 404 and must not insert.
	rec = do(t, router, http.MethodPost, "/items-management", map[string]any{
		"id": "stale", "name": "Ghost", "category": "tools", "price": 1, "stock": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("stale upsert: status %d, want 404", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/items", nil)
	items = nil
	decode(t, rec, &items)
	if len(items) != 1 {
		t.Fatalf("stale upsert inserted a record: %v", items)
	}

	rec = do(t, router, http.MethodDelete, "/items-management", map[string]any{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	var deleted map[string]any
	decode(t, rec, &deleted)
	if deleted["message"] == nil || deleted["item"] == nil {
		t.Fatalf("unexpected delete body: %v", deleted)
	}

	rec = do(t, router, http.MethodDelete, "/items-management", map[string]any{"id": id})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d, want 404", rec.Code)
	}
}

func TestOfferEndpoints(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/offers-management", map[string]any{
		"name": "Summer Sale", "description": "10% off", "category": "tools",
		"discountPercentage": 10, "minQuantity": 2, "validUntil": "2026-12-31",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create offer: status %d, body %s", rec.Code, rec.Body.String())
	}
	var offer map[string]any
	decode(t, rec, &offer)
	if offer["id"] == nil || offer["discountPercentage"].(float64) != 10 {
		t.Fatalf("unexpected offer: %v", offer)
	}

	// Discount outside 0-100 is rejected by validation.
	rec = do(t, router, http.MethodPost, "/offers-management", map[string]any{
		"name": "Bad", "description": "", "category": "tools",
		"discountPercentage": 150, "minQuantity": 1, "validUntil": "2026-12-31",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid discount: status %d, want 400", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/offers", nil)
	var offers []map[string]any
	decode(t, rec, &offers)
	if len(offers) != 1 {
		t.Fatalf("unexpected offers: %v", offers)
	}

	rec = do(t, router, http.MethodDelete, "/offers-management", map[string]any{"id": offer["id"]})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete offer: status %d", rec.Code)
	}
	var deleted map[string]any
	decode(t, rec, &deleted)
	if deleted["offer"] == nil {
		t.Fatalf("delete body missing offer: %v", deleted)
	}
}

func TestSubmitOrderEndpoint(t *testing.T) {
	router := newTestRouter()
	created := createItem(t, router, "Widget", 2.00, 10)
	itemID := created["id"].(string)

	rec := do(t, router, http.MethodPost, "/orders", map[string]any{
		"items":         []map[string]any{{"id": itemID, "quantity": 4}},
		"appliedOffers": []string{},
		"subtotal":      8.0, "discount": 0.0, "total": 8.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	decode(t, rec, &resp)
	if resp["order_id"] == nil || resp["message"] == nil {
		t.Fatalf("unexpected response: %v", resp)
	}

	// Stock is decremented and visible through GET /items.
	rec = do(t, router, http.MethodGet, "/items", nil)
	var items []map[string]any
	decode(t, rec, &items)
	if got := items[0]["stock"].(float64); got != 6 {
		t.Fatalf("stock after order = %v, want 6", got)
	}

	// The order shows up in the log with a server-assigned date.
	rec = do(t, router, http.MethodGet, "/orders", nil)
	var orders []map[string]any
	decode(t, rec, &orders)
	if len(orders) != 1 {
		t.Fatalf("orders = %v", orders)
	}
	if orders[0]["date"] == nil || orders[0]["id"] == nil {
		t.Fatalf("order missing server fields: %v", orders[0])
	}
}

func TestSubmitOrderInsufficientStock(t *testing.T) {
	router := newTestRouter()
	created := createItem(t, router, "Widget", 2.00, 6)
	itemID := created["id"].(string)

	rec := do(t, router, http.MethodPost, "/orders", map[string]any{
		"items":    []map[string]any{{"id": itemID, "quantity": 7}},
		"subtotal": 14.0, "discount": 0.0, "total": 14.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	var resp map[string]string
	decode(t, rec, &resp)
	if !strings.Contains(resp["error"], itemID) {
		t.Fatalf("error does not name the item: %q", resp["error"])
	}
	if !strings.Contains(resp["error"], "available 6") || !strings.Contains(resp["error"], "requested 7") {
		t.Fatalf("error does not report the shortfall: %q", resp["error"])
	}
}

func TestSubmitOrderUnknownItemLeavesStockAlone(t *testing.T) {
	router := newTestRouter()
	created := createItem(t, router, "Widget", 2.00, 5)
	itemID := created["id"].(string)

	rec := do(t, router, http.MethodPost, "/orders", map[string]any{
		"items": []map[string]any{
			{"id": itemID, "quantity": 2},
			{"id": "ghost", "quantity": 1},
		},
		"subtotal": 0.0, "discount": 0.0, "total": 0.0,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/items", nil)
	var items []map[string]any
	decode(t, rec, &items)
	if got := items[0]["stock"].(float64); got != 5 {
		t.Fatalf("stock after rejected order = %v, want 5", got)
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"no items", map[string]any{"items": []map[string]any{}, "subtotal": 0.0, "discount": 0.0, "total": 0.0}},
		{"zero quantity", map[string]any{"items": []map[string]any{{"id": "x", "quantity": 0}}, "subtotal": 0.0, "discount": 0.0, "total": 0.0}},
		{"missing item id", map[string]any{"items": []map[string]any{{"quantity": 2}}, "subtotal": 0.0, "discount": 0.0, "total": 0.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/orders", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPut, "/items-management", map[string]any{})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d, want 405", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
}
