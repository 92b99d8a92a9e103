package models

import "time"

var (
	PolicyTypes    = []string{"Auto", "Property", "Liability", "Commercial", "Marine", "Other"}
	PolicyStatuses = []string{"Active", "Pending", "Cancelled", "Expired"}
)

// Exposure amounts are NUMERIC(13,2) in the store.
const (
	ExposureAmountMin = 999.99
	ExposureAmountMax = 99999999999.99
)

type Policy struct {
	ID             int64
	AccountNumber  string
	CustomerID     int64
	ManagerID      *int64
	PolicyType     string
	Status         string
	StartDate      time.Time
	EndDate        time.Time
	ExposureAmount float64
	LocAddr1       string
	LocAddr2       *string
	LocCity        string
	LocState       string
	LocZip         string
	CreatedAt      time.Time

	// Navigation names, populated only on joined reads.
	CustomerName *string
	ManagerName  *string
}
