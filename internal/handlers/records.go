package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insureops/api/internal/models"
	"insureops/api/internal/validate"
)

type customerRecordDTO struct {
	RecordID       *int64    `json:"record_id,omitempty"`
	FileName       string    `json:"file_name" binding:"required,max=255"`
	URL            string    `json:"url" binding:"required,max=500"`
	UploadedBy     *int64    `json:"uploaded_by,omitempty"`
	UploaderName   *string   `json:"uploader_name,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
	AttachedToType string    `json:"attached_to_type" binding:"required"`
	AttachedToID   int64     `json:"attached_to_id" binding:"required"`
	Description    *string   `json:"description,omitempty" binding:"omitempty,max=500"`
}

func toCustomerRecordDTO(r models.CustomerRecord) customerRecordDTO {
	id := r.ID
	return customerRecordDTO{
		RecordID:       &id,
		FileName:       r.FileName,
		URL:            r.URL,
		UploadedBy:     r.UploadedBy,
		UploaderName:   r.UploaderName,
		UploadedAt:     r.UploadedAt,
		AttachedToType: r.AttachedToType,
		AttachedToID:   r.AttachedToID,
		Description:    r.Description,
	}
}

func (dto customerRecordDTO) toEntity() models.CustomerRecord {
	uploaded := dto.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now().UTC()
	}
	return models.CustomerRecord{
		FileName:       dto.FileName,
		URL:            dto.URL,
		UploadedBy:     dto.UploadedBy,
		UploadedAt:     uploaded,
		AttachedToType: dto.AttachedToType,
		AttachedToID:   dto.AttachedToID,
		Description:    dto.Description,
	}
}

// validateCustomerRecord checks the attachment target. The target id is only
// verified against the table the type names; a dangling id for a different
// type is the client's mistake, not ours to guess at.
func (h HandlerSet) validateCustomerRecord(c *gin.Context, r models.CustomerRecord) bool {
	if !validate.OneOf(models.AttachmentTypes, r.AttachedToType) {
		badRequest(c, "attached_to_type must be one of Customer, Policy, Claim")
		return false
	}
	if inFuture(r.UploadedAt) {
		badRequest(c, "upload date cannot be in the future")
		return false
	}

	ctx := c.Request.Context()
	var (
		exists bool
		err    error
	)
	switch r.AttachedToType {
	case "Customer":
		exists, err = h.store.CustomerExists(ctx, r.AttachedToID)
	case "Policy":
		exists, err = h.store.PolicyExists(ctx, r.AttachedToID)
	case "Claim":
		exists, err = h.store.ClaimExists(ctx, r.AttachedToID)
	}
	if err != nil {
		h.storeError(c, err, "")
		return false
	}
	if !exists {
		badRequest(c, "the attachment target does not exist")
		return false
	}

	if r.UploadedBy != nil {
		ok, err := h.store.EmployeeExists(ctx, *r.UploadedBy)
		if err != nil {
			h.storeError(c, err, "")
			return false
		}
		if !ok {
			badRequest(c, "the uploading employee does not exist")
			return false
		}
	}
	return true
}

func (h HandlerSet) ListCustomerRecords(c *gin.Context) {
	records, err := h.store.ListCustomerRecords(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "")
		return
	}
	out := make([]customerRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toCustomerRecordDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetCustomerRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := h.store.GetCustomerRecord(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "record not found")
		return
	}
	c.JSON(http.StatusOK, toCustomerRecordDTO(record))
}

func (h HandlerSet) CreateCustomerRecord(c *gin.Context) {
	var dto customerRecordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}
	if dto.RecordID != nil {
		badRequest(c, "record ID must not be set on creation")
		return
	}

	record := dto.toEntity()
	if !h.validateCustomerRecord(c, record) {
		return
	}
	if err := h.store.CreateCustomerRecord(c.Request.Context(), &record); err != nil {
		h.storeError(c, err, "")
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+formatID(record.ID))
	c.JSON(http.StatusCreated, toCustomerRecordDTO(record))
}

func (h HandlerSet) UpdateCustomerRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto customerRecordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequest(c, err.Error())
		return
	}

	record := dto.toEntity()
	record.ID = id
	if !h.validateCustomerRecord(c, record) {
		return
	}
	if err := h.store.UpdateCustomerRecord(c.Request.Context(), record); err != nil {
		h.storeError(c, err, "record not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteCustomerRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteCustomerRecord(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "record not found")
		return
	}
	c.Status(http.StatusNoContent)
}
