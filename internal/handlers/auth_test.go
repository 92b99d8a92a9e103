package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "Agent@InsureOps.test",
		"password": "hunter2hunter2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created userDTO
	decodeBody(t, rec, &created)
	if created.Email != "agent@insureops.test" {
		t.Errorf("email should be normalized, got %q", created.Email)
	}
	if created.Role != "Employee" {
		t.Errorf("role should default to Employee, got %q", created.Role)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		User    userDTO    `json:"user"`
		Session sessionDTO `json:"session"`
	}
	decodeBody(t, rec, &result)
	if result.Session.SessionID == "" {
		t.Error("login should mint a session id")
	}
	if len(result.Session.SessionHash) != 64 {
		t.Errorf("session hash should be 64 hex chars, got %d", len(result.Session.SessionHash))
	}
	if result.Session.ExpiresAt == nil {
		t.Error("session should carry an expiry")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine, _ := newTestEnv(t)

	payload := map[string]any{"email": "agent@insureops.test", "password": "hunter2hunter2"}
	if rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", payload); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", payload); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", rec.Code)
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	engine, _ := newTestEnv(t)

	doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})

	wrongPassword := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "not the password",
	})
	unknownEmail := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ghost@insureops.test",
		"password": "hunter2hunter2",
	})

	if wrongPassword.Code != http.StatusBadRequest {
		t.Errorf("wrong password: expected 400, got %d", wrongPassword.Code)
	}
	if unknownEmail.Code != http.StatusBadRequest {
		t.Errorf("unknown email: expected 400, got %d", unknownEmail.Code)
	}
	// The two failures must be indistinguishable to the caller.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginWritesAudits(t *testing.T) {
	engine, _ := newTestEnv(t)

	doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "wrong",
	})
	doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})

	rec := doJSON(t, engine, http.MethodGet, "/api/login-audits", nil)
	var audits []loginAuditDTO
	decodeBody(t, rec, &audits)
	if len(audits) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(audits))
	}
	if audits[0].Event != "LOGIN_FAIL" || audits[1].Event != "LOGIN_SUCCESS" {
		t.Errorf("unexpected audit events: %s, %s", audits[0].Event, audits[1].Event)
	}
}

func TestLogout(t *testing.T) {
	engine, _ := newTestEnv(t)

	doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	var result struct {
		Session sessionDTO `json:"session"`
	}
	decodeBody(t, rec, &result)

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/logout", map[string]any{
		"session_id": result.Session.SessionID,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/sessions/"+result.Session.SessionID, nil)
	var session sessionDTO
	decodeBody(t, rec, &session)
	if session.RevokedAt == nil {
		t.Error("logout should stamp revoked_at")
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/logout", map[string]any{
		"session_id": "does-not-exist",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", rec.Code)
	}
}

func TestInactiveUserCannotLogin(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	var created userDTO
	decodeBody(t, rec, &created)

	rec = doJSON(t, engine, http.MethodPatch, "/api/users/"+formatID(*created.UserID), []map[string]any{
		{"field": "is_active", "value": false},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "agent@insureops.test",
		"password": "hunter2hunter2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inactive user: expected 400, got %d", rec.Code)
	}
}
