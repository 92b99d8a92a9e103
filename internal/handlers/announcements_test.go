package handlers

import (
	"net/http"
	"testing"
)

func validAnnouncementPayload() map[string]any {
	return map[string]any{
		"title":      "Scheduled maintenance",
		"body":       "The portal will be offline Saturday 02:00-04:00 UTC.",
		"publish_at": "2025-08-01T00:00:00Z",
		"expire_at":  "2025-09-01T00:00:00Z",
		"created_by": 1,
	}
}

func TestCreateAnnouncement(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/announcements", validAnnouncementPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnnouncementFieldRules(t *testing.T) {
	engine, _ := newTestEnv(t)

	cases := map[string]func(p map[string]any){
		"blank title": func(p map[string]any) { p["title"] = "   " },
		"expiry before publish": func(p map[string]any) {
			p["publish_at"] = "2025-09-01T00:00:00Z"
			p["expire_at"] = "2025-08-01T00:00:00Z"
		},
		"future created": func(p map[string]any) { p["created_at"] = "2099-01-01T00:00:00Z" },
		"supplied id":    func(p map[string]any) { p["announcement_id"] = 4 },
	}
	for name, mutate := range cases {
		payload := validAnnouncementPayload()
		mutate(payload)
		rec := doJSON(t, engine, http.MethodPost, "/api/announcements", payload)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}
