package models

import "time"

// AttachmentTypes is the allow-list for CustomerRecord.AttachedToType.
var AttachmentTypes = []string{"Customer", "Policy", "Claim"}

// CustomerRecord is an uploaded document attached to a customer, policy or
// claim. The file itself lives behind the URL; only metadata is stored here.
type CustomerRecord struct {
	ID             int64
	FileName       string
	URL            string
	UploadedBy     *int64
	UploadedAt     time.Time
	AttachedToType string
	AttachedToID   int64
	Description    *string

	// Name of the uploading employee, populated only on joined reads.
	UploaderName *string
}
