package handlers

import (
	"net/http"
	"testing"
)

func validCustomerPayload() map[string]any {
	return map[string]any{
		"name":       "Acme Logistics",
		"email":      "ops@acme.test",
		"phone":      "2125550100",
		"addr_line1": "1 Harbor Way",
		"city":       "New York",
		"state_code": "NY",
		"zip_code":   "10001",
	}
}

func TestCreateCustomer(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/customers", validCustomerPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Location") == "" {
		t.Error("created response should carry a Location header")
	}

	var created customerDTO
	decodeBody(t, rec, &created)
	if created.CustomerID == nil || *created.CustomerID == 0 {
		t.Fatal("response should carry the assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at should default to now")
	}

	rec = doJSON(t, engine, http.MethodGet, rec.Header().Get("Location"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("round-trip read failed: %d", rec.Code)
	}
}

func TestCreateCustomerRejectsBadFields(t *testing.T) {
	engine, _ := newTestEnv(t)

	cases := map[string]func(p map[string]any){
		"supplied id":      func(p map[string]any) { p["customer_id"] = 7 },
		"bad state code":   func(p map[string]any) { p["state_code"] = "XX" },
		"lowercase state":  func(p map[string]any) { p["state_code"] = "ny" },
		"short zip":        func(p map[string]any) { p["zip_code"] = "123" },
		"short phone":      func(p map[string]any) { p["phone"] = "555" },
		"email with space": func(p map[string]any) { p["email"] = "a b@acme.test" },
		"missing name":     func(p map[string]any) { delete(p, "name") },
		"future created":   func(p map[string]any) { p["created_at"] = "2099-01-01T00:00:00Z" },
	}
	for name, mutate := range cases {
		payload := validCustomerPayload()
		mutate(payload)
		rec := doJSON(t, engine, http.MethodPost, "/api/customers", payload)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestUpdateCustomerKeepsOwnValues(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/customers", validCustomerPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}
	var created customerDTO
	decodeBody(t, rec, &created)

	// Re-submitting the same values is a legal update, not a conflict.
	payload := validCustomerPayload()
	payload["city"] = "Brooklyn"
	rec = doJSON(t, engine, http.MethodPut, "/api/customers/"+formatID(*created.CustomerID), payload)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/customers/"+formatID(*created.CustomerID), nil)
	var got customerDTO
	decodeBody(t, rec, &got)
	if got.City != "Brooklyn" {
		t.Errorf("update not applied, city = %q", got.City)
	}
}

func TestDeleteCustomerTwice(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/customers", validCustomerPayload())
	var created customerDTO
	decodeBody(t, rec, &created)
	path := "/api/customers/" + formatID(*created.CustomerID)

	if rec := doJSON(t, engine, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("first delete: expected 204, got %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodDelete, path, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestGetCustomerBadID(t *testing.T) {
	engine, _ := newTestEnv(t)

	if rec := doJSON(t, engine, http.MethodGet, "/api/customers/abc", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: expected 400, got %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodGet, "/api/customers/999", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", rec.Code)
	}
}
