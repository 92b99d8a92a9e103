package models

import "time"

// UserRoles is the allow-list for User.Role. Accounts created through
// registration default to "Employee".
var UserRoles = []string{"Customer", "Employee", "Admin"}

const UserRoleDefault = "Employee"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CustomerID   *int64
	EmployeeID   *int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Session is a server-issued login session. The ID and hash are always
// generated server-side; client-supplied values are discarded.
type Session struct {
	ID          string
	UserID      int64
	SessionHash string
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	RevokedAt   *time.Time
	IPAddress   string
	UserAgent   *string
}

// LoginEvents is the allow-list for LoginAudit.Event.
var LoginEvents = []string{"LOGIN_SUCCESS", "LOGIN_FAIL", "LOGOUT"}

type LoginAudit struct {
	ID         int64
	UserID     *int64
	Event      string
	IPAddress  *string
	UserAgent  *string
	OccurredAt time.Time
}
