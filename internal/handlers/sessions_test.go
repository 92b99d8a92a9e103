package handlers

import (
	"net/http"
	"testing"
)

func TestCreateSessionGeneratesIdentity(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload())
	var user userDTO
	decodeBody(t, rec, &user)

	rec = doJSON(t, engine, http.MethodPost, "/api/sessions", map[string]any{
		"user_id":      *user.UserID,
		"ip_address":   "10.0.0.7",
		"session_id":   "client-chosen",
		"session_hash": "client-chosen-hash",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created sessionDTO
	decodeBody(t, rec, &created)
	if created.SessionID == "client-chosen" {
		t.Error("session id must be generated server-side")
	}
	if created.SessionHash == "client-chosen-hash" || len(created.SessionHash) != 64 {
		t.Errorf("session hash must be generated server-side, got %q", created.SessionHash)
	}
	if created.ExpiresAt == nil {
		t.Error("expiry should default from the configured TTL")
	}
}

func TestCreateSessionRules(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", validUserPayload())
	var user userDTO
	decodeBody(t, rec, &user)

	rec = doJSON(t, engine, http.MethodPost, "/api/sessions", map[string]any{
		"user_id":    *user.UserID,
		"ip_address": "not-an-ip",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad ip: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/sessions", map[string]any{
		"user_id":    999,
		"ip_address": "10.0.0.7",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("dangling user: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/sessions/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", rec.Code)
	}
}

func TestLoginAuditEndpointRules(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/login-audits", map[string]any{
		"event": "PASSWORD_RESET",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown event: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/login-audits", map[string]any{
		"event":      "LOGIN_FAIL",
		"ip_address": "10.0.0.7",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created loginAuditDTO
	decodeBody(t, rec, &created)
	if created.OccurredAt.IsZero() {
		t.Error("occurred_at should default to now")
	}
}
