package handlers

import (
	"net/http"
	"testing"
)

func TestCreateReleaseVersionFormat(t *testing.T) {
	engine, _ := newTestEnv(t)

	for _, bad := range []string{"1.2.3", "v1.2", "v1.2.3.4", "v1.2.x"} {
		rec := doJSON(t, engine, http.MethodPost, "/api/releases", map[string]any{"version": bad})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", bad, rec.Code)
		}
	}

	rec := doJSON(t, engine, http.MethodPost, "/api/releases", map[string]any{"version": "v1.2.3"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("v1.2.3: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateReleaseDuplicateVersion(t *testing.T) {
	engine, _ := newTestEnv(t)

	payload := map[string]any{"version": "v1.0.0"}
	if rec := doJSON(t, engine, http.MethodPost, "/api/releases", payload); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodPost, "/api/releases", payload); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate version: expected 400, got %d", rec.Code)
	}
}

func TestUpdateReleaseVersionImmutable(t *testing.T) {
	engine, _ := newTestEnv(t)

	if rec := doJSON(t, engine, http.MethodPost, "/api/releases", map[string]any{"version": "v1.0.0"}); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}

	rec := doJSON(t, engine, http.MethodPut, "/api/releases/v1.0.0", map[string]any{
		"version": "v2.0.0",
		"notes":   "renamed",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rename attempt: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPut, "/api/releases/v1.0.0", map[string]any{
		"version": "v1.0.0",
		"notes":   "patched the rating engine",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/releases/v1.0.0", nil)
	var got releaseDTO
	decodeBody(t, rec, &got)
	if got.Notes == nil || *got.Notes != "patched the rating engine" {
		t.Errorf("notes not updated: %v", got.Notes)
	}
}

func TestListReleasesNewestFirst(t *testing.T) {
	engine, _ := newTestEnv(t)

	seed := []map[string]any{
		{"version": "v1.0.0", "start_date": "2025-01-10T00:00:00Z"},
		{"version": "v1.2.0"},
		{"version": "v1.1.0", "start_date": "2025-06-01T00:00:00Z"},
	}
	for _, payload := range seed {
		if rec := doJSON(t, engine, http.MethodPost, "/api/releases", payload); rec.Code != http.StatusCreated {
			t.Fatalf("seed %v failed: %d", payload["version"], rec.Code)
		}
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/releases", nil)
	var releases []releaseDTO
	decodeBody(t, rec, &releases)

	want := []string{"v1.1.0", "v1.0.0", "v1.2.0"}
	if len(releases) != len(want) {
		t.Fatalf("expected %d releases, got %d", len(want), len(releases))
	}
	for i, version := range want {
		if releases[i].Version != version {
			t.Errorf("position %d: got %s, want %s", i, releases[i].Version, version)
		}
	}
}

func TestDeleteRelease(t *testing.T) {
	engine, _ := newTestEnv(t)

	doJSON(t, engine, http.MethodPost, "/api/releases", map[string]any{"version": "v1.0.0"})

	if rec := doJSON(t, engine, http.MethodDelete, "/api/releases/v1.0.0", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodGet, "/api/releases/v1.0.0", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
