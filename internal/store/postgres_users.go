package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const userColumns = `user_id, email, password_hash, role, customer_id, employee_id, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CustomerID,
		&u.EmployeeID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (s *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Postgres) GetUser(ctx context.Context, id int64) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	const query = `
		INSERT INTO users (email, password_hash, role, customer_id, employee_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id
	`
	return s.pool.QueryRow(ctx, query,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CustomerID,
		u.EmployeeID,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
}

func (s *Postgres) UpdateUser(ctx context.Context, u models.User) error {
	const query = `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, customer_id = $5, employee_id = $6,
		    is_active = $7, updated_at = $8
		WHERE user_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CustomerID,
		u.EmployeeID,
		u.IsActive,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteUser(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) UserExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, id)
}

func (s *Postgres) UserEmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND user_id <> $2)`,
		email, excludeID)
}

const sessionColumns = `session_id, user_id, session_hash, created_at, expires_at, revoked_at, ip_address, user_agent`

func scanSession(row pgx.Row) (models.Session, error) {
	var sess models.Session
	err := row.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.SessionHash,
		&sess.CreatedAt,
		&sess.ExpiresAt,
		&sess.RevokedAt,
		&sess.IPAddress,
		&sess.UserAgent,
	)
	return sess, err
}

func (s *Postgres) GetSession(ctx context.Context, id string) (models.Session, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = $1`, id)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	return sess, err
}

func (s *Postgres) CreateSession(ctx context.Context, sess models.Session) error {
	const query = `
		INSERT INTO sessions (session_id, user_id, session_hash, created_at, expires_at, revoked_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		sess.ID,
		sess.UserID,
		sess.SessionHash,
		sess.CreatedAt,
		sess.ExpiresAt,
		sess.RevokedAt,
		sess.IPAddress,
		sess.UserAgent,
	)
	return err
}

func (s *Postgres) RevokeSession(ctx context.Context, id string, at time.Time) error {
	cmd, err := s.pool.Exec(ctx, `UPDATE sessions SET revoked_at = $2 WHERE session_id = $1`, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const loginAuditColumns = `audit_id, user_id, login_event, ip_address, user_agent, occurred_at`

func scanLoginAudit(row pgx.Row) (models.LoginAudit, error) {
	var a models.LoginAudit
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Event,
		&a.IPAddress,
		&a.UserAgent,
		&a.OccurredAt,
	)
	return a, err
}

func (s *Postgres) ListLoginAudits(ctx context.Context) ([]models.LoginAudit, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+loginAuditColumns+` FROM login_audit ORDER BY audit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []models.LoginAudit
	for rows.Next() {
		a, err := scanLoginAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

func (s *Postgres) GetLoginAudit(ctx context.Context, id int64) (models.LoginAudit, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+loginAuditColumns+` FROM login_audit WHERE audit_id = $1`, id)
	a, err := scanLoginAudit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.LoginAudit{}, ErrNotFound
	}
	return a, err
}

func (s *Postgres) CreateLoginAudit(ctx context.Context, a *models.LoginAudit) error {
	const query = `
		INSERT INTO login_audit (user_id, login_event, ip_address, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING audit_id
	`
	return s.pool.QueryRow(ctx, query,
		a.UserID,
		a.Event,
		a.IPAddress,
		a.UserAgent,
		a.OccurredAt,
	).Scan(&a.ID)
}

func (s *Postgres) UpdateLoginAudit(ctx context.Context, a models.LoginAudit) error {
	const query = `
		UPDATE login_audit
		SET user_id = $2, login_event = $3, ip_address = $4, user_agent = $5, occurred_at = $6
		WHERE audit_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Event,
		a.IPAddress,
		a.UserAgent,
		a.OccurredAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteLoginAudit(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM login_audit WHERE audit_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
