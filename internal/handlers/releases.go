package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/store"
	"insureops/api/internal/validate"
)

type releaseDTO struct {
	Version      string     `json:"version" binding:"required,max=20"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	RolloutDate  *time.Time `json:"rollout_date,omitempty"`
	CompleteDate *time.Time `json:"complete_date,omitempty"`
	Notes        *string    `json:"notes,omitempty" binding:"omitempty,max=2000"`
	HotfixNotes  *string    `json:"hotfix_notes,omitempty" binding:"omitempty,max=2000"`
}

func toReleaseDTO(r models.Release) releaseDTO {
	return releaseDTO{
		Version:      r.Version,
		StartDate:    r.StartDate,
		RolloutDate:  r.RolloutDate,
		CompleteDate: r.CompleteDate,
		Notes:        r.Notes,
		HotfixNotes:  r.HotfixNotes,
	}
}

func (dto releaseDTO) toEntity() models.Release {
	return models.Release{
		Version:      dto.Version,
		StartDate:    dto.StartDate,
		RolloutDate:  dto.RolloutDate,
		CompleteDate: dto.CompleteDate,
		Notes:        dto.Notes,
		HotfixNotes:  dto.HotfixNotes,
	}
}

func (h HandlerSet) ListReleases(c *gin.Context) {
	releases, err := h.store.ListReleases(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]releaseDTO, 0, len(releases))
	for _, r := range releases {
		out = append(out, toReleaseDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetRelease(c *gin.Context) {
	version := c.Param("version")
	release, err := h.store.GetRelease(c.Request.Context(), version)
	if err != nil {
		h.storeError(c, err, "release not found")
		return
	}
	c.JSON(http.StatusOK, toReleaseDTO(release))
}

func (h HandlerSet) CreateRelease(c *gin.Context) {
	var dto releaseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validate.Version(dto.Version) {
		badRequest(c, "version must have the form v<MAJOR>.<MINOR>.<PATCH>")
		return
	}

	_, err := h.store.GetRelease(c.Request.Context(), dto.Version)
	switch {
	case err == nil:
		badRequest(c, "the given version already exists")
		return
	case !errors.Is(err, store.ErrNotFound):
		h.storeError(c, err, "")
		return
	}

	release := dto.toEntity()
	if err := h.store.CreateRelease(c.Request.Context(), release); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+release.Version)
	c.JSON(http.StatusCreated, toReleaseDTO(release))
}

// UpdateRelease replaces the date and notes fields; the version in the path
// is the identity and a differing version in the body is rejected rather
// than treated as a rename.
func (h HandlerSet) UpdateRelease(c *gin.Context) {
	version := c.Param("version")
	var dto releaseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.Version != version {
		badRequest(c, "version cannot be changed")
		return
	}

	release := dto.toEntity()
	if err := h.store.UpdateRelease(c.Request.Context(), release); err != nil {
		h.storeError(c, err, "release not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteRelease(c *gin.Context) {
	version := c.Param("version")
	if err := h.store.DeleteRelease(c.Request.Context(), version); err != nil {
		h.storeError(c, err, "release not found")
		return
	}
	c.Status(http.StatusNoContent)
}
