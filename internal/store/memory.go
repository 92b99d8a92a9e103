package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"insureops/api/internal/models"
)

// Memory keeps the whole entity set in process. It backs the handler tests
// and mirrors the Postgres implementation's semantics, including the
// navigation-name joins on reads.
type Memory struct {
	mu sync.Mutex

	customers     map[int64]models.Customer
	employees     map[int64]models.Employee
	policies      map[int64]models.Policy
	claims        map[int64]models.Claim
	claimNotes    map[int64]models.ClaimNote
	records       map[int64]models.CustomerRecord
	announcements map[int64]models.Announcement
	releases      map[string]models.Release
	users         map[int64]models.User
	sessions      map[string]models.Session
	loginAudits   map[int64]models.LoginAudit

	nextID int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		customers:     make(map[int64]models.Customer),
		employees:     make(map[int64]models.Employee),
		policies:      make(map[int64]models.Policy),
		claims:        make(map[int64]models.Claim),
		claimNotes:    make(map[int64]models.ClaimNote),
		records:       make(map[int64]models.CustomerRecord),
		announcements: make(map[int64]models.Announcement),
		releases:      make(map[string]models.Release),
		users:         make(map[int64]models.User),
		sessions:      make(map[string]models.Session),
		loginAudits:   make(map[int64]models.LoginAudit),
	}
}

func (m *Memory) nextIdentity() int64 {
	m.nextID++
	return m.nextID
}

// sortedIDs returns the map keys ascending, which matches insertion order
// because identities are assigned from a single counter.
func sortedIDs[V any](entities map[int64]V) []int64 {
	ids := make([]int64, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// customers

func (m *Memory) ListCustomers(_ context.Context) ([]models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Customer
	for _, id := range sortedIDs(m.customers) {
		out = append(out, m.customers[id])
	}
	return out, nil
}

func (m *Memory) GetCustomer(_ context.Context, id int64) (models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return models.Customer{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CreateCustomer(_ context.Context, c *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextIdentity()
	m.customers[c.ID] = *c
	return nil
}

func (m *Memory) UpdateCustomer(_ context.Context, c models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; !ok {
		return ErrNotFound
	}
	m.customers[c.ID] = c
	return nil
}

func (m *Memory) DeleteCustomer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *Memory) CustomerExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.customers[id]
	return ok, nil
}

// employees

func (m *Memory) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Employee
	for _, id := range sortedIDs(m.employees) {
		out = append(out, m.employees[id])
	}
	return out, nil
}

func (m *Memory) GetEmployee(_ context.Context, id int64) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return models.Employee{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) CreateEmployee(_ context.Context, e *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextIdentity()
	m.employees[e.ID] = *e
	return nil
}

func (m *Memory) UpdateEmployee(_ context.Context, e models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[e.ID]; !ok {
		return ErrNotFound
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *Memory) EmployeeExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.employees[id]
	return ok, nil
}

func (m *Memory) EmployeeEmailInUse(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.ID != excludeID && e.Email != nil && *e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// employeeName resolves a navigation name; callers hold the lock.
func (m *Memory) employeeName(id *int64) *string {
	if id == nil {
		return nil
	}
	e, ok := m.employees[*id]
	if !ok {
		return nil
	}
	name := e.Name
	return &name
}

// policies

func (m *Memory) ListPolicies(_ context.Context) ([]models.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Policy
	for _, id := range sortedIDs(m.policies) {
		out = append(out, m.joinPolicy(m.policies[id]))
	}
	return out, nil
}

func (m *Memory) joinPolicy(p models.Policy) models.Policy {
	if c, ok := m.customers[p.CustomerID]; ok {
		name := c.Name
		p.CustomerName = &name
	}
	p.ManagerName = m.employeeName(p.ManagerID)
	return p
}

func (m *Memory) GetPolicy(_ context.Context, id int64) (models.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.policies[id]
	if !ok {
		return models.Policy{}, ErrNotFound
	}
	return m.joinPolicy(p), nil
}

func (m *Memory) CreatePolicy(_ context.Context, p *models.Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextIdentity()
	m.policies[p.ID] = *p
	return nil
}

func (m *Memory) UpdatePolicy(_ context.Context, p models.Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.policies[p.ID]; !ok {
		return ErrNotFound
	}
	p.CustomerName, p.ManagerName = nil, nil
	m.policies[p.ID] = p
	return nil
}

func (m *Memory) DeletePolicy(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.policies[id]; !ok {
		return ErrNotFound
	}
	delete(m.policies, id)
	return nil
}

func (m *Memory) PolicyExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.policies[id]
	return ok, nil
}

// claims

func (m *Memory) ListClaims(_ context.Context) ([]models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Claim
	for _, id := range sortedIDs(m.claims) {
		c := m.claims[id]
		c.AssignedEmployee = m.employeeName(c.AssignedTo)
		out = append(out, c)
	}
	return out, nil
}

func (m *Memory) GetClaim(_ context.Context, id int64) (models.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[id]
	if !ok {
		return models.Claim{}, ErrNotFound
	}
	c.AssignedEmployee = m.employeeName(c.AssignedTo)
	return c, nil
}

func (m *Memory) CreateClaim(_ context.Context, c *models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextIdentity()
	m.claims[c.ID] = *c
	return nil
}

func (m *Memory) UpdateClaim(_ context.Context, c models.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.claims[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.AssignedEmployee = nil
	m.claims[c.ID] = c
	return nil
}

func (m *Memory) DeleteClaim(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claims[id]; !ok {
		return ErrNotFound
	}
	delete(m.claims, id)
	return nil
}

func (m *Memory) ClaimExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.claims[id]
	return ok, nil
}

func (m *Memory) ClaimNumberInUse(_ context.Context, number string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.claims {
		if c.ID != excludeID && c.ClaimNumber == number {
			return true, nil
		}
	}
	return false, nil
}

// claim notes

func (m *Memory) joinClaimNote(n models.ClaimNote) models.ClaimNote {
	if c, ok := m.claims[n.ClaimID]; ok {
		number := c.ClaimNumber
		n.ClaimNumber = &number
	}
	return n
}

func (m *Memory) ListClaimNotes(_ context.Context) ([]models.ClaimNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ClaimNote
	for _, id := range sortedIDs(m.claimNotes) {
		out = append(out, m.joinClaimNote(m.claimNotes[id]))
	}
	return out, nil
}

func (m *Memory) GetClaimNote(_ context.Context, id int64) (models.ClaimNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.claimNotes[id]
	if !ok {
		return models.ClaimNote{}, ErrNotFound
	}
	return m.joinClaimNote(n), nil
}

func (m *Memory) CreateClaimNote(_ context.Context, n *models.ClaimNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.nextIdentity()
	m.claimNotes[n.ID] = *n
	return nil
}

func (m *Memory) UpdateClaimNote(_ context.Context, n models.ClaimNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.claimNotes[n.ID]
	if !ok {
		return ErrNotFound
	}
	n.CreatedAt = existing.CreatedAt
	n.ClaimNumber = nil
	m.claimNotes[n.ID] = n
	return nil
}

func (m *Memory) DeleteClaimNote(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claimNotes[id]; !ok {
		return ErrNotFound
	}
	delete(m.claimNotes, id)
	return nil
}

// customer records

func (m *Memory) ListCustomerRecords(_ context.Context) ([]models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CustomerRecord
	for _, id := range sortedIDs(m.records) {
		r := m.records[id]
		r.UploaderName = m.employeeName(r.UploadedBy)
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) GetCustomerRecord(_ context.Context, id int64) (models.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return models.CustomerRecord{}, ErrNotFound
	}
	r.UploaderName = m.employeeName(r.UploadedBy)
	return r, nil
}

func (m *Memory) CreateCustomerRecord(_ context.Context, r *models.CustomerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextIdentity()
	m.records[r.ID] = *r
	return nil
}

func (m *Memory) UpdateCustomerRecord(_ context.Context, r models.CustomerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[r.ID]
	if !ok {
		return ErrNotFound
	}
	r.UploadedAt = existing.UploadedAt
	r.UploaderName = nil
	m.records[r.ID] = r
	return nil
}

func (m *Memory) DeleteCustomerRecord(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// announcements

func (m *Memory) ListAnnouncements(_ context.Context) ([]models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Announcement
	for _, id := range sortedIDs(m.announcements) {
		out = append(out, m.announcements[id])
	}
	return out, nil
}

func (m *Memory) GetAnnouncement(_ context.Context, id int64) (models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.announcements[id]
	if !ok {
		return models.Announcement{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) CreateAnnouncement(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextIdentity()
	m.announcements[a.ID] = *a
	return nil
}

func (m *Memory) UpdateAnnouncement(_ context.Context, a models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.announcements[a.ID]; !ok {
		return ErrNotFound
	}
	m.announcements[a.ID] = a
	return nil
}

func (m *Memory) DeleteAnnouncement(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.announcements[id]; !ok {
		return ErrNotFound
	}
	delete(m.announcements, id)
	return nil
}

// releases

func (m *Memory) ListReleases(_ context.Context) ([]models.Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Release, 0, len(m.releases))
	for _, r := range m.releases {
		out = append(out, r)
	}
	// Newest first by start date, undated last, version as tiebreak.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].StartDate, out[j].StartDate
		switch {
		case a == nil && b == nil:
			return out[i].Version < out[j].Version
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		default:
			return out[i].Version < out[j].Version
		}
	})
	return out, nil
}

func (m *Memory) GetRelease(_ context.Context, version string) (models.Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.releases[version]
	if !ok {
		return models.Release{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) CreateRelease(_ context.Context, r models.Release) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases[r.Version] = r
	return nil
}

func (m *Memory) UpdateRelease(_ context.Context, r models.Release) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.releases[r.Version]; !ok {
		return ErrNotFound
	}
	m.releases[r.Version] = r
	return nil
}

func (m *Memory) DeleteRelease(_ context.Context, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.releases[version]; !ok {
		return ErrNotFound
	}
	delete(m.releases, version)
	return nil
}

// users

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, id := range sortedIDs(m.users) {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range sortedIDs(m.users) {
		if m.users[id].Email == email {
			return m.users[id], nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextIdentity()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	u.CreatedAt = existing.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) UserExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *Memory) UserEmailInUse(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// sessions

func (m *Memory) GetSession(_ context.Context, id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) CreateSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) RevokeSession(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.RevokedAt = &at
	m.sessions[id] = s
	return nil
}

// login audits

func (m *Memory) ListLoginAudits(_ context.Context) ([]models.LoginAudit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LoginAudit
	for _, id := range sortedIDs(m.loginAudits) {
		out = append(out, m.loginAudits[id])
	}
	return out, nil
}

func (m *Memory) GetLoginAudit(_ context.Context, id int64) (models.LoginAudit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.loginAudits[id]
	if !ok {
		return models.LoginAudit{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) CreateLoginAudit(_ context.Context, a *models.LoginAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextIdentity()
	m.loginAudits[a.ID] = *a
	return nil
}

func (m *Memory) UpdateLoginAudit(_ context.Context, a models.LoginAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loginAudits[a.ID]; !ok {
		return ErrNotFound
	}
	m.loginAudits[a.ID] = a
	return nil
}

func (m *Memory) DeleteLoginAudit(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loginAudits[id]; !ok {
		return ErrNotFound
	}
	delete(m.loginAudits, id)
	return nil
}
