package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const employeeColumns = `employee_id, name, title, email, phone, status, created_at`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Title,
		&e.Email,
		&e.Phone,
		&e.Status,
		&e.CreatedAt,
	)
	return e, err
}

func (s *Postgres) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Postgres) GetEmployee(ctx context.Context, id int64) (models.Employee, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Postgres) CreateEmployee(ctx context.Context, e *models.Employee) error {
	const query = `
		INSERT INTO employees (name, title, email, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING employee_id
	`
	return s.pool.QueryRow(ctx, query,
		e.Name,
		e.Title,
		e.Email,
		e.Phone,
		e.Status,
		e.CreatedAt,
	).Scan(&e.ID)
}

func (s *Postgres) UpdateEmployee(ctx context.Context, e models.Employee) error {
	const query = `
		UPDATE employees
		SET name = $2, title = $3, email = $4, phone = $5, status = $6, created_at = $7
		WHERE employee_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		e.ID,
		e.Name,
		e.Title,
		e.Email,
		e.Phone,
		e.Status,
		e.CreatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteEmployee(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)`, id)
}

func (s *Postgres) EmployeeEmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND employee_id <> $2)`,
		email, excludeID)
}
