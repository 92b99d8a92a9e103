package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func validUserPayload() map[string]any {
	return map[string]any{
		"email":     "agent@insureops.test",
		"password":  "hunter2hunter2",
		"role":      "Employee",
		"is_active": true,
	}
}

func TestCreateUser(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not leak password material")
	}
}

func TestCreateUserFieldRules(t *testing.T) {
	engine, _ := newTestEnv(t)

	cases := map[string]func(p map[string]any){
		"unknown role":      func(p map[string]any) { p["role"] = "Auditor" },
		"missing password":  func(p map[string]any) { delete(p, "password") },
		"short password":    func(p map[string]any) { p["password"] = "short" },
		"dangling customer": func(p map[string]any) { p["customer_id"] = 42 },
		"dangling employee": func(p map[string]any) { p["employee_id"] = 42 },
		"supplied id":       func(p map[string]any) { p["user_id"] = 5 },
	}
	for name, mutate := range cases {
		payload := validUserPayload()
		mutate(payload)
		rec := doJSON(t, engine, http.MethodPost, "/api/users", payload)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestUserEmailUniqueness(t *testing.T) {
	engine, _ := newTestEnv(t)

	if rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload()); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload()); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", rec.Code)
	}
}

func TestUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload())
	var created userDTO
	decodeBody(t, rec, &created)

	rec = doJSON(t, engine, http.MethodPut, "/api/users/"+formatID(*created.UserID), map[string]any{
		"email":     "agent@insureops.test",
		"role":      "Admin",
		"is_active": true,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// The original password still works after an update that omitted it.
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login after update: expected 200, got %d", rec.Code)
	}
}

func TestPatchUser(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload())
	var created userDTO
	decodeBody(t, rec, &created)
	path := "/api/users/" + formatID(*created.UserID)

	rec = doJSON(t, engine, http.MethodPatch, path, []map[string]any{
		{"field": "role", "value": "Admin"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var patched userDTO
	decodeBody(t, rec, &patched)
	if patched.Role != "Admin" {
		t.Errorf("role not patched: %q", patched.Role)
	}
	if patched.UpdatedAt == nil {
		t.Error("patch should stamp updated_at")
	}

	rec = doJSON(t, engine, http.MethodPatch, path, []map[string]any{
		{"field": "role", "value": "Auditor"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("patched role must still pass the allow-list, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPatch, path, []map[string]any{
		{"field": "password", "value": "short"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short password: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPatch, path, []map[string]any{
		{"field": "password", "value": "a brand new password"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("password patch failed: %d", rec.Code)
	}
	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "a brand new password",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login with patched password: expected 200, got %d", rec.Code)
	}
}
