package models

import "time"

type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	AddrLine1 string
	AddrLine2 *string
	City      string
	StateCode string
	ZipCode   string
	CreatedAt time.Time
}
