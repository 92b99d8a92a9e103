package models

import "time"

type Announcement struct {
	ID        int64
	Title     string
	Body      string
	PublishAt time.Time
	ExpireAt  time.Time
	CreatedBy int64
	CreatedAt time.Time
}
