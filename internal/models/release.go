package models

import "time"

// Release is keyed by its semantic version string (v<MAJOR>.<MINOR>.<PATCH>).
// The version is the identity and never changes after creation.
type Release struct {
	Version      string
	StartDate    *time.Time
	RolloutDate  *time.Time
	CompleteDate *time.Time
	Notes        *string
	HotfixNotes  *string
}
