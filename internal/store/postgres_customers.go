package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const customerColumns = `customer_id, name, email, phone, addr_line1, addr_line2, city, state_code, zip_code, created_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.AddrLine1,
		&c.AddrLine2,
		&c.City,
		&c.StateCode,
		&c.ZipCode,
		&c.CreatedAt,
	)
	return c, err
}

func (s *Postgres) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Postgres) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Customer{}, ErrNotFound
	}
	return c, err
}

func (s *Postgres) CreateCustomer(ctx context.Context, c *models.Customer) error {
	const query = `
		INSERT INTO customers (name, email, phone, addr_line1, addr_line2, city, state_code, zip_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING customer_id
	`
	return s.pool.QueryRow(ctx, query,
		c.Name,
		c.Email,
		c.Phone,
		c.AddrLine1,
		c.AddrLine2,
		c.City,
		c.StateCode,
		c.ZipCode,
		c.CreatedAt,
	).Scan(&c.ID)
}

func (s *Postgres) UpdateCustomer(ctx context.Context, c models.Customer) error {
	const query = `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, addr_line1 = $5, addr_line2 = $6,
		    city = $7, state_code = $8, zip_code = $9, created_at = $10
		WHERE customer_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.AddrLine1,
		c.AddrLine2,
		c.City,
		c.StateCode,
		c.ZipCode,
		c.CreatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteCustomer(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1)`, id)
}
