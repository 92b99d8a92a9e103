package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type claimNoteDTO struct {
	NoteID       *int64    `json:"note_id,omitempty"`
	ClaimID      int64     `json:"claim_id" binding:"required"`
	ClaimNumber  *string   `json:"claim_number,omitempty"`
	AuthorUserID *int64    `json:"author_user_id,omitempty"`
	NoteText     string    `json:"note_text" binding:"required,max=2000"`
	CreatedAt    time.Time `json:"created_at"`
}

func toClaimNoteDTO(n models.ClaimNote) claimNoteDTO {
	id := n.ID
	return claimNoteDTO{
		NoteID:       &id,
		ClaimID:      n.ClaimID,
		ClaimNumber:  n.ClaimNumber,
		AuthorUserID: n.AuthorUserID,
		NoteText:     n.NoteText,
		CreatedAt:    n.CreatedAt,
	}
}

func (dto claimNoteDTO) toEntity() models.ClaimNote {
	created := dto.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return models.ClaimNote{
		ClaimID:      dto.ClaimID,
		AuthorUserID: dto.AuthorUserID,
		NoteText:     dto.NoteText,
		CreatedAt:    created,
	}
}

func (h HandlerSet) validateClaimNote(c *gin.Context, n models.ClaimNote) bool {
	if validate.WhitespaceOnly(n.NoteText) {
		badRequest(c, "note text must not be blank")
		return false
	}
	if inFuture(n.CreatedAt) {
		badRequest(c, "creation date cannot be in the future")
		return false
	}
	exists, err := h.store.ClaimExists(c.Request.Context(), n.ClaimID)
	if err != nil {
		h.storeError(c, err, "")
		return false
	}
	if !exists {
		badRequest(c, "the referenced claim does not exist")
		return false
	}
	if n.AuthorUserID != nil {
		exists, err := h.store.UserExists(c.Request.Context(), *n.AuthorUserID)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if !exists {
			badRequest(c, "the referenced author does not exist")
			return false
		}
	}
	return true
}

func (h HandlerSet) ListClaimNotes(c *gin.Context) {
	notes, err := h.store.ListClaimNotes(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]claimNoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toClaimNoteDTO(n))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetClaimNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	note, err := h.store.GetClaimNote(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "claim note not found")
		return
	}
	c.JSON(http.StatusOK, toClaimNoteDTO(note))
}

func (h HandlerSet) CreateClaimNote(c *gin.Context) {
	var dto claimNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.NoteID != nil {
		badRequest(c, "note ID must not be set on creation")
		return
	}

	note := dto.toEntity()
	if !h.validateClaimNote(c, note) {
		return
	}
	if err := h.store.CreateClaimNote(c.Request.Context(), &note); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(note.ID))
	c.JSON(http.StatusCreated, toClaimNoteDTO(note))
}

func (h HandlerSet) UpdateClaimNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto claimNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	note := dto.toEntity()
	note.ID = id
	if !h.validateClaimNote(c, note) {
		return
	}
	if err := h.store.UpdateClaimNote(c.Request.Context(), note); err != nil {
		h.storeError(c, err, "claim note not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteClaimNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteClaimNote(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "claim note not found")
		return
	}
	c.Status(http.StatusNoContent)
}
