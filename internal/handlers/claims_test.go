package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"insureops/api/internal/models"
	"insureops/api/internal/store"
)

func seedPolicy(t *testing.T, st *store.Memory) models.Policy {
	t.Helper()
	ctx := context.Background()

	customer := models.Customer{Name: "Harbor Freight Co", Email: "ops@harbor.test", Phone: "2125550100"}
	if err := st.CreateCustomer(ctx, &customer); err != nil {
		t.Fatal(err)
	}
	policy := models.Policy{
		AccountNumber:  "ACC-100",
		CustomerID:     customer.ID,
		PolicyType:     "Marine",
		Status:         "Active",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ExposureAmount: 250000,
		LocAddr1:       "1 Harbor Way",
		LocCity:        "New York",
		LocState:       "NY",
		LocZip:         "10001",
		CreatedAt:      time.Now().UTC(),
	}
	if err := st.CreatePolicy(ctx, &policy); err != nil {
		t.Fatal(err)
	}
	return policy
}

func TestCreateClaim(t *testing.T) {
	engine, st := newTestEnv(t)
	policy := seedPolicy(t, st)

	rec := doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created claimDTO
	decodeBody(t, rec, &created)
	if created.Status != "Open" {
		t.Errorf("status should default to Open, got %q", created.Status)
	}

	rec = doJSON(t, engine, http.MethodGet, rec.Header().Get("Location"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("round-trip read failed: %d", rec.Code)
	}
}

func TestCreateClaimRequiresPolicy(t *testing.T) {
	engine, _ := newTestEnv(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    42,
		"claim_number": "CLM-001",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("dangling policy: expected 400, got %d", rec.Code)
	}
}

func TestClaimNumberMustBeUnique(t *testing.T) {
	engine, st := newTestEnv(t)
	policy := seedPolicy(t, st)

	payload := map[string]any{"policy_id": policy.ID, "claim_number": "CLM-001"}
	if rec := doJSON(t, engine, http.MethodPost, "/api/claims", payload); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}
	if rec := doJSON(t, engine, http.MethodPost, "/api/claims", payload); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate number: expected 400, got %d", rec.Code)
	}
}

func TestUpdateClaimKeepsOwnNumber(t *testing.T) {
	engine, st := newTestEnv(t)
	policy := seedPolicy(t, st)

	rec := doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-001",
	})
	var created claimDTO
	decodeBody(t, rec, &created)

	rec = doJSON(t, engine, http.MethodPut, "/api/claims/"+formatID(*created.ClaimID), map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-001",
		"status":       "Approved",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, engine, http.MethodGet, "/api/claims/"+formatID(*created.ClaimID), nil)
	var got claimDTO
	decodeBody(t, rec, &got)
	if got.Status != "Approved" {
		t.Errorf("status not updated: %q", got.Status)
	}
}

func TestClaimFieldRules(t *testing.T) {
	engine, st := newTestEnv(t)
	policy := seedPolicy(t, st)

	rec := doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":      policy.ID,
		"claim_number":   "CLM-002",
		"reserve_amount": -10,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative reserve: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-003",
		"status":       "Lost",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-004",
		"claim_id":     9,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("supplied id: expected 400, got %d", rec.Code)
	}
}

func TestClaimJoinsAssignedEmployee(t *testing.T) {
	engine, st := newTestEnv(t)
	policy := seedPolicy(t, st)

	adjuster := models.Employee{Name: "Lee Park", Status: "Active"}
	if err := st.CreateEmployee(context.Background(), &adjuster); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, engine, http.MethodPost, "/api/claims", map[string]any{
		"policy_id":    policy.ID,
		"claim_number": "CLM-001",
		"assigned_to":  adjuster.ID,
	})
	var created claimDTO
	decodeBody(t, rec, &created)

	rec = doJSON(t, engine, http.MethodGet, "/api/claims/"+formatID(*created.ClaimID), nil)
	var got claimDTO
	decodeBody(t, rec, &got)
	if got.AssignedEmployee == nil || *got.AssignedEmployee != "Lee Park" {
		t.Errorf("assigned employee name not joined: %v", got.AssignedEmployee)
	}
}
