package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/service"
	"insureops/api/internal/store"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type logoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (h HandlerSet) RegisterAccount(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.account.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			badRequest(c, err.Error())
			return
		}
		h.storeError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(user))
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.account.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Deliberately the same status and body for every failure mode.
			badRequest(c, err.Error())
			return
		}
		h.storeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    toUserDTO(result.User),
		"session": toSessionDTO(result.Session),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.account.Logout(c.Request.Context(), req.SessionID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.storeError(c, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}
