package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type announcementDTO struct {
	AnnouncementID *int64    `json:"announcement_id,omitempty"`
	Title          string    `json:"title" binding:"required,max=150"`
	Body           string    `json:"body" binding:"required"`
	PublishAt      time.Time `json:"publish_at" binding:"required"`
	ExpireAt       time.Time `json:"expire_at" binding:"required"`
	CreatedBy      int64     `json:"created_by" binding:"required"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAnnouncementDTO(a models.Announcement) announcementDTO {
	id := a.ID
	return announcementDTO{
		AnnouncementID: &id,
		Title:          a.Title,
		Body:           a.Body,
		PublishAt:      a.PublishAt,
		ExpireAt:       a.ExpireAt,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}

func (dto announcementDTO) toEntity() models.Announcement {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return models.Announcement{
		Title:     dto.Title,
		Body:      dto.Body,
		PublishAt: dto.PublishAt,
		ExpireAt:  dto.ExpireAt,
		CreatedBy: dto.CreatedBy,
		CreatedAt: created,
	}
}

func validateAnnouncement(dto announcementDTO) string {
	if validate.WhitespaceOnly(dto.Title) {
		return "title must not be blank"
	}
	if validate.WhitespaceOnly(dto.Body) {
		return "body must not be blank"
	}
	if dto.ExpireAt.Before(dto.PublishAt) {
		return "expiry cannot precede publication"
	}
	if inFuture(dto.CreatedAt) {
		return "creation date cannot be in the future"
	}
	return ""
}

func (h HandlerSet) ListAnnouncements(c *gin.Context) {
	announcements, err := h.store.ListAnnouncements(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]announcementDTO, 0, len(announcements))
	for _, a := range announcements {
		out = append(out, toAnnouncementDTO(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetAnnouncement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	announcement, err := h.store.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "announcement not found")
		return
	}
	c.JSON(http.StatusOK, toAnnouncementDTO(announcement))
}

func (h HandlerSet) CreateAnnouncement(c *gin.Context) {
	var dto announcementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.AnnouncementID != nil {
		badRequest(c, "announcement ID must not be set on creation")
		return
	}
	if msg := validateAnnouncement(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	announcement := dto.toEntity()
	if err := h.store.CreateAnnouncement(c.Request.Context(), &announcement); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(announcement.ID))
	c.JSON(http.StatusCreated, toAnnouncementDTO(announcement))
}

func (h HandlerSet) UpdateAnnouncement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto announcementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := validateAnnouncement(dto); msg != "" {
		badRequest(c, msg)
		return
	}

	announcement := dto.toEntity()
	announcement.ID = id
	if err := h.store.UpdateAnnouncement(c.Request.Context(), announcement); err != nil {
		h.storeError(c, err, "announcement not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteAnnouncement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "announcement not found")
		return
	}
	c.Status(http.StatusNoContent)
}
