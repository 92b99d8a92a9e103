package models

import "time"

// ClaimStatuses is the allow-list for Claim.Status. A claim created without a
// status starts as "Open".
var ClaimStatuses = []string{"Open", "Investigating", "Pending", "Approved", "Denied", "Closed"}

const ClaimStatusDefault = "Open"

type Claim struct {
	ID            int64
	PolicyID      int64
	ClaimNumber   string
	Status        string
	DateOfLoss    *time.Time
	DateReported  *time.Time
	ReserveAmount float64
	PaidAmount    float64
	Memo          *string
	AssignedTo    *int64
	CreatedBy     *int64
	CreatedAt     time.Time

	// Name of the assigned employee, populated only on joined reads.
	AssignedEmployee *string
}

type ClaimNote struct {
	ID           int64
	ClaimID      int64
	AuthorUserID *int64
	NoteText     string
	CreatedAt    time.Time

	// Claim number of the owning claim, populated only on joined reads.
	ClaimNumber *string
}
