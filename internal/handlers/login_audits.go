package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type loginAuditDTO struct {
	AuditID    *int64    `json:"audit_id,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	Event      string    `json:"event" binding:"required"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	UserAgent  *string   `json:"user_agent,omitempty" binding:"omitempty,max=400"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toLoginAuditDTO(a models.LoginAudit) loginAuditDTO {
	id := a.ID
	return loginAuditDTO{
		AuditID:    &id,
		UserID:     a.UserID,
		Event:      a.Event,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		OccurredAt: a.OccurredAt,
	}
}

func (dto loginAuditDTO) toEntity() models.LoginAudit {
	occurred := dto.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return models.LoginAudit{
		UserID:     dto.UserID,
		Event:      dto.Event,
		IPAddress:  dto.IPAddress,
		UserAgent:  dto.UserAgent,
		OccurredAt: occurred,
	}
}

func (h HandlerSet) validateLoginAudit(c *gin.Context, a models.LoginAudit) bool {
	if !validate.OneOf(models.LoginEvents, a.Event) {
		badRequest(c, "event must be one of LOGIN_SUCCESS, LOGIN_FAIL, LOGOUT")
		return false
	}
	if a.IPAddress != nil && !validate.IPAddress(*a.IPAddress) {
		badRequest(c, "ip address is not valid")
		return false
	}
	if inFuture(a.OccurredAt) {
		badRequest(c, "occurrence date cannot be in the future")
		return false
	}
	if a.UserID != nil {
		exists, err := h.store.UserExists(c.Request.Context(), *a.UserID)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if !exists {
			badRequest(c, "the referenced user does not exist")
			return false
		}
	}
	return true
}

func (h HandlerSet) ListLoginAudits(c *gin.Context) {
	audits, err := h.store.ListLoginAudits(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]loginAuditDTO, 0, len(audits))
	for _, a := range audits {
		out = append(out, toLoginAuditDTO(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetLoginAudit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	audit, err := h.store.GetLoginAudit(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "login audit not found")
		return
	}
	c.JSON(http.StatusOK, toLoginAuditDTO(audit))
}

func (h HandlerSet) CreateLoginAudit(c *gin.Context) {
	var dto loginAuditDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.AuditID != nil {
		badRequest(c, "audit ID must not be set on creation")
		return
	}

	audit := dto.toEntity()
	if !h.validateLoginAudit(c, audit) {
		return
	}
	if err := h.store.CreateLoginAudit(c.Request.Context(), &audit); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(audit.ID))
	c.JSON(http.StatusCreated, toLoginAuditDTO(audit))
}

func (h HandlerSet) UpdateLoginAudit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto loginAuditDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	audit := dto.toEntity()
	audit.ID = id
	if !h.validateLoginAudit(c, audit) {
		return
	}
	if err := h.store.UpdateLoginAudit(c.Request.Context(), audit); err != nil {
		h.storeError(c, err, "login audit not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteLoginAudit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteLoginAudit(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "login audit not found")
		return
	}
	c.Status(http.StatusNoContent)
}
