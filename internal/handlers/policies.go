package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type policyDTO struct {
	PolicyID       *int64    `json:"policy_id,omitempty"`
	AccountNumber  string    `json:"account_number" binding:"required,max=32"`
	CustomerID     int64     `json:"customer_id" binding:"required"`
	CustomerName   *string   `json:"customer_name,omitempty"`
	ManagerID      *int64    `json:"manager_id,omitempty"`
	ManagerName    *string   `json:"manager_name,omitempty"`
	PolicyType     string    `json:"policy_type" binding:"required,max=20"`
	Status         string    `json:"status" binding:"required,max=20"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	ExposureAmount float64   `json:"exposure_amount" binding:"required"`
	LocAddr1       string    `json:"loc_addr1" binding:"required,max=120"`
	LocAddr2       *string   `json:"loc_addr2,omitempty" binding:"omitempty,max=120"`
	LocCity        string    `json:"loc_city" binding:"required,max=80"`
	LocState       string    `json:"loc_state" binding:"required"`
	LocZip         string    `json:"loc_zip" binding:"required"`
	CreatedAt      time.Time `json:"created_at"`
}

func toPolicyDTO(p models.Policy) policyDTO {
	id := p.ID
	return policyDTO{
		PolicyID:       &id,
		AccountNumber:  p.AccountNumber,
		CustomerID:     p.CustomerID,
		CustomerName:   p.CustomerName,
		ManagerID:      p.ManagerID,
		ManagerName:    p.ManagerName,
		PolicyType:     p.PolicyType,
		Status:         p.Status,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		ExposureAmount: p.ExposureAmount,
		LocAddr1:       p.LocAddr1,
		LocAddr2:       p.LocAddr2,
		LocCity:        p.LocCity,
		LocState:       p.LocState,
		LocZip:         p.LocZip,
		CreatedAt:      p.CreatedAt,
	}
}

func (dto policyDTO) toEntity() models.Policy {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return models.Policy{
		AccountNumber:  dto.AccountNumber,
		CustomerID:     dto.CustomerID,
		ManagerID:      dto.ManagerID,
		PolicyType:     dto.PolicyType,
		Status:         dto.Status,
		StartDate:      dto.StartDate,
		EndDate:        dto.EndDate,
		ExposureAmount: dto.ExposureAmount,
		LocAddr1:       dto.LocAddr1,
		LocAddr2:       dto.LocAddr2,
		LocCity:        dto.LocCity,
		LocState:       dto.LocState,
		LocZip:         dto.LocZip,
		CreatedAt:      created,
	}
}

func validatePolicy(dto policyDTO) string {
	if !validate.OneOf(models.PolicyTypes, dto.PolicyType) {
		return "policy type must be one of Auto, Property, Liability, Commercial, Marine, Other"
	}
	if !validate.OneOf(models.PolicyStatuses, dto.Status) {
		return "status must be one of Active, Pending, Cancelled, Expired"
	}
	if !validate.StateCode(dto.LocState) {
		return "location state must be a two-letter code for a state, the District of Columbia, or the five US territories"
	}
	if !validate.ZipCode(dto.LocZip) {
		return "location zip code must be five to nine digits"
	}
	if dto.ExposureAmount < models.ExposureAmountMin || dto.ExposureAmount > models.ExposureAmountMax {
		return "exposure amount is out of range"
	}
	if inFuture(dto.CreatedAt) {
		return "creation date cannot be in the future"
	}
	return ""
}

func (h HandlerSet) ListPolicies(c *gin.Context) {
	policies, err := h.store.ListPolicies(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]policyDTO, 0, len(policies))
	for _, p := range policies {
		out = append(out, toPolicyDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetPolicy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	policy, err := h.store.GetPolicy(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "policy not found")
		return
	}
	c.JSON(http.StatusOK, toPolicyDTO(policy))
}

func (h HandlerSet) CreatePolicy(c *gin.Context) {
	var dto policyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.PolicyID != nil {
		badRequest(c, "policy ID must not be set on creation")
		return
	}
	if msg := validatePolicy(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	policy := dto.toEntity()
	if err := h.store.CreatePolicy(c.Request.Context(), &policy); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(policy.ID))
	c.JSON(http.StatusCreated, toPolicyDTO(policy))
}

func (h HandlerSet) UpdatePolicy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto policyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := validatePolicy(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	policy := dto.toEntity()
	policy.ID = id
	if err := h.store.UpdatePolicy(c.Request.Context(), policy); err != nil {
		h.storeError(c, err, "policy not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeletePolicy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeletePolicy(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "policy not found")
		return
	}
	c.Status(http.StatusNoContent)
}
