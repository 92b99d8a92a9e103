package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type claimDTO struct {
	ClaimID          *int64     `json:"claim_id,omitempty"`
	PolicyID         int64      `json:"policy_id" binding:"required"`
	ClaimNumber      string     `json:"claim_number" binding:"required,max=32"`
	Status           string     `json:"status"`
	DateOfLoss       *time.Time `json:"date_of_loss,omitempty"`
	DateReported     *time.Time `json:"date_reported,omitempty"`
	ReserveAmount    float64    `json:"reserve_amount"`
	PaidAmount       float64    `json:"paid_amount"`
	Memo             *string    `json:"memo,omitempty" binding:"omitempty,max=300"`
	AssignedTo       *int64     `json:"assigned_to,omitempty"`
	AssignedEmployee *string    `json:"assigned_employee,omitempty"`
	CreatedBy        *int64     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toClaimDTO(cl models.Claim) claimDTO {
	id := cl.ID
	return claimDTO{
		ClaimID:          &id,
		PolicyID:         cl.PolicyID,
		ClaimNumber:      cl.ClaimNumber,
		Status:           cl.Status,
		DateOfLoss:       cl.DateOfLoss,
		DateReported:     cl.DateReported,
		ReserveAmount:    cl.ReserveAmount,
		PaidAmount:       cl.PaidAmount,
		Memo:             cl.Memo,
		AssignedTo:       cl.AssignedTo,
		AssignedEmployee: cl.AssignedEmployee,
		CreatedBy:        cl.CreatedBy,
		CreatedAt:        cl.CreatedAt,
	}
}

func (dto claimDTO) toEntity() models.Claim {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	status := dto.Status
	if status == "" {
		status = models.ClaimStatusDefault
	}
	return models.Claim{
		PolicyID:      dto.PolicyID,
		ClaimNumber:   dto.ClaimNumber,
		Status:        status,
		DateOfLoss:    dto.DateOfLoss,
		DateReported:  dto.DateReported,
		ReserveAmount: dto.ReserveAmount,
		PaidAmount:    dto.PaidAmount,
		Memo:          dto.Memo,
		AssignedTo:    dto.AssignedTo,
		CreatedBy:     dto.CreatedBy,
		CreatedAt:     created,
	}
}

// validateClaim covers the field rules plus the two referential checks: the
// owning policy must exist and the claim number must be unique across all
// other claims.
func (h HandlerSet) validateClaim(c *gin.Context, cl models.Claim, excludeID int64) bool {
	if !validate.OneOf(models.ClaimStatuses, cl.Status) {
		badRequest(c, "status must be one of Open, Investigating, Pending, Approved, Denied, Closed")
		return false
	}
	if cl.ReserveAmount < 0 || cl.PaidAmount < 0 {
		badRequest(c, "reserve and paid amounts must not be negative")
		return false
	}
	if inFuture(cl.CreatedAt) {
		badRequest(c, "creation date cannot be in the future")
		return false
	}
	exists, err := h.store.PolicyExists(c.Request.Context(), cl.PolicyID)
	if err != nil {
		h.storeError(c, err, "")
		return false
	}
	if !exists {
		badRequest(c, "the referenced policy does not exist")
		return false
	}
	inUse, err := h.store.ClaimNumberInUse(c.Request.Context(), cl.ClaimNumber, excludeID)
	if err != nil {
		h.storeError(c, err, "")
		return false
	}
	if inUse {
		badRequest(c, "the given claim number is already in use")
		return false
	}
	return true
}

func (h HandlerSet) ListClaims(c *gin.Context) {
	claims, err := h.store.ListClaims(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]claimDTO, 0, len(claims))
	for _, cl := range claims {
		out = append(out, toClaimDTO(cl))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetClaim(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	claim, err := h.store.GetClaim(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "claim not found")
		return
	}
	c.JSON(http.StatusOK, toClaimDTO(claim))
}

func (h HandlerSet) CreateClaim(c *gin.Context) {
	var dto claimDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.ClaimID != nil {
		badRequest(c, "claim ID must not be set on creation")
		return
	}

	claim := dto.toEntity()
	if !h.validateClaim(c, claim, 0) {
		return
	}
	if err := h.store.CreateClaim(c.Request.Context(), &claim); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(claim.ID))
	c.JSON(http.StatusCreated, toClaimDTO(claim))
}

func (h HandlerSet) UpdateClaim(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto claimDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	claim := dto.toEntity()
	claim.ID = id
	if !h.validateClaim(c, claim, id) {
		return
	}
	if err := h.store.UpdateClaim(c.Request.Context(), claim); err != nil {
		h.storeError(c, err, "claim not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteClaim(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteClaim(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "claim not found")
		return
	}
	c.Status(http.StatusNoContent)
}
