package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"insureops/api/internal/models"
	"insureops/api/internal/security"
	"insureops/api/internal/validate"
)

type sessionDTO struct {
	SessionID   string     `json:"session_id,omitempty"`
	UserID      int64      `json:"user_id" binding:"required"`
	SessionHash string     `json:"session_hash,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	IPAddress   string     `json:"ip_address" binding:"required"`
	UserAgent   *string    `json:"user_agent,omitempty" binding:"omitempty,max=400"`
}

func toSessionDTO(s models.Session) sessionDTO {
	return sessionDTO{
		SessionID:   s.ID,
		UserID:      s.UserID,
		SessionHash: s.SessionHash,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
		RevokedAt:   s.RevokedAt,
		IPAddress:   s.IPAddress,
		UserAgent:   s.UserAgent,
	}
}

func (h HandlerSet) GetSession(c *gin.Context) {
	session, err := h.store.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err, "session not found")
		return
	}
	c.JSON(http.StatusOK, toSessionDTO(session))
}

// CreateSession mints a session directly, outside the login flow. The id and
// hash are always generated here; anything the client sent for them is
// ignored.
func (h HandlerSet) CreateSession(c *gin.Context) {
	var dto sessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validate.IPAddress(dto.IPAddress) {
		badRequest(c, "ip address is not valid")
		return
	}
	if inFuture(dto.CreatedAt) {
		badRequest(c, "creation date cannot be in the future")
		return
	}

	exists, err := h.store.UserExists(c.Request.Context(), dto.UserID)
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	if !exists {
		badRequest(c, "the referenced user does not exist")
		return
	}

	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	session := models.Session{
		ID:          uuid.NewString(),
		UserID:      dto.UserID,
		SessionHash: security.NewSessionHash(),
		CreatedAt:   created,
		ExpiresAt:   dto.ExpiresAt,
		IPAddress:   dto.IPAddress,
		UserAgent:   dto.UserAgent,
	}
	if session.ExpiresAt == nil {
		expires := created.Add(h.cfg.Security.SessionTTL)
		session.ExpiresAt = &expires
	}

	if err := h.store.CreateSession(c.Request.Context(), session); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+session.ID)
	c.JSON(http.StatusCreated, toSessionDTO(session))
}
