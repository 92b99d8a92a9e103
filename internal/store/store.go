// Package store is the persistence gateway for the entity set. Two
// implementations exist: Postgres for production and Memory for tests.
package store

import (
	"context"
	"errors"
	"time"

	"insureops/api/internal/models"
)

// ErrNotFound is returned whenever a primary key does not resolve to a row.
var ErrNotFound = errors.New("not found")

type Store interface {
	// customers
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	CustomerExists(ctx context.Context, id int64) (bool, error)

	// employees
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int64) (models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee) error
	UpdateEmployee(ctx context.Context, e models.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	EmployeeExists(ctx context.Context, id int64) (bool, error)
	EmployeeEmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)

	// policies
	ListPolicies(ctx context.Context) ([]models.Policy, error)
	GetPolicy(ctx context.Context, id int64) (models.Policy, error)
	CreatePolicy(ctx context.Context, p *models.Policy) error
	UpdatePolicy(ctx context.Context, p models.Policy) error
	DeletePolicy(ctx context.Context, id int64) error
	PolicyExists(ctx context.Context, id int64) (bool, error)

	// claims
	ListClaims(ctx context.Context) ([]models.Claim, error)
	GetClaim(ctx context.Context, id int64) (models.Claim, error)
	CreateClaim(ctx context.Context, c *models.Claim) error
	UpdateClaim(ctx context.Context, c models.Claim) error
	DeleteClaim(ctx context.Context, id int64) error
	ClaimExists(ctx context.Context, id int64) (bool, error)
	ClaimNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error)

	// claim notes
	ListClaimNotes(ctx context.Context) ([]models.ClaimNote, error)
	GetClaimNote(ctx context.Context, id int64) (models.ClaimNote, error)
	CreateClaimNote(ctx context.Context, n *models.ClaimNote) error
	UpdateClaimNote(ctx context.Context, n models.ClaimNote) error
	DeleteClaimNote(ctx context.Context, id int64) error

	// customer records
	ListCustomerRecords(ctx context.Context) ([]models.CustomerRecord, error)
	GetCustomerRecord(ctx context.Context, id int64) (models.CustomerRecord, error)
	CreateCustomerRecord(ctx context.Context, r *models.CustomerRecord) error
	UpdateCustomerRecord(ctx context.Context, r models.CustomerRecord) error
	DeleteCustomerRecord(ctx context.Context, id int64) error

	// announcements
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (models.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	UpdateAnnouncement(ctx context.Context, a models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error

	// releases, keyed by version string, listed newest-first by start date
	ListReleases(ctx context.Context) ([]models.Release, error)
	GetRelease(ctx context.Context, version string) (models.Release, error)
	CreateRelease(ctx context.Context, r models.Release) error
	UpdateRelease(ctx context.Context, r models.Release) error
	DeleteRelease(ctx context.Context, version string) error

	// users
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u models.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)
	UserEmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)

	// sessions
	GetSession(ctx context.Context, id string) (models.Session, error)
	CreateSession(ctx context.Context, s models.Session) error
	RevokeSession(ctx context.Context, id string, at time.Time) error

	// login audits
	ListLoginAudits(ctx context.Context) ([]models.LoginAudit, error)
	GetLoginAudit(ctx context.Context, id int64) (models.LoginAudit, error)
	CreateLoginAudit(ctx context.Context, a *models.LoginAudit) error
	UpdateLoginAudit(ctx context.Context, a models.LoginAudit) error
	DeleteLoginAudit(ctx context.Context, id int64) error
}
