package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

// Policy reads join the owning customer and the managing employee so the
// mapper can expose their names without embedding the related rows.
const policySelect = `
	SELECT p.policy_id, p.account_number, p.customer_id, p.manager_id, p.policy_type, p.status,
	       p.start_date, p.end_date, p.exposure_amount,
	       p.loc_addr1, p.loc_addr2, p.loc_city, p.loc_state, p.loc_zip, p.created_at,
	       c.name, e.name
	FROM policies p
	JOIN customers c ON c.customer_id = p.customer_id
	LEFT JOIN employees e ON e.employee_id = p.manager_id
`

func scanPolicy(row pgx.Row) (models.Policy, error) {
	var p models.Policy
	err := row.Scan(
		&p.ID,
		&p.AccountNumber,
		&p.CustomerID,
		&p.ManagerID,
		&p.PolicyType,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.ExposureAmount,
		&p.LocAddr1,
		&p.LocAddr2,
		&p.LocCity,
		&p.LocState,
		&p.LocZip,
		&p.CreatedAt,
		&p.CustomerName,
		&p.ManagerName,
	)
	return p, err
}

func (s *Postgres) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	rows, err := s.pool.Query(ctx, policySelect+` ORDER BY p.policy_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (s *Postgres) GetPolicy(ctx context.Context, id int64) (models.Policy, error) {
	row := s.pool.QueryRow(ctx, policySelect+` WHERE p.policy_id = $1`, id)
	p, err := scanPolicy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Policy{}, ErrNotFound
	}
	return p, err
}

func (s *Postgres) CreatePolicy(ctx context.Context, p *models.Policy) error {
	const query = `
		INSERT INTO policies (account_number, customer_id, manager_id, policy_type, status,
		                      start_date, end_date, exposure_amount,
		                      loc_addr1, loc_addr2, loc_city, loc_state, loc_zip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING policy_id
	`
	return s.pool.QueryRow(ctx, query,
		p.AccountNumber,
		p.CustomerID,
		p.ManagerID,
		p.PolicyType,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.ExposureAmount,
		p.LocAddr1,
		p.LocAddr2,
		p.LocCity,
		p.LocState,
		p.LocZip,
		p.CreatedAt,
	).Scan(&p.ID)
}

func (s *Postgres) UpdatePolicy(ctx context.Context, p models.Policy) error {
	const query = `
		UPDATE policies
		SET account_number = $2, customer_id = $3, manager_id = $4, policy_type = $5, status = $6,
		    start_date = $7, end_date = $8, exposure_amount = $9,
		    loc_addr1 = $10, loc_addr2 = $11, loc_city = $12, loc_state = $13, loc_zip = $14,
		    created_at = $15
		WHERE policy_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		p.ID,
		p.AccountNumber,
		p.CustomerID,
		p.ManagerID,
		p.PolicyType,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.ExposureAmount,
		p.LocAddr1,
		p.LocAddr2,
		p.LocCity,
		p.LocState,
		p.LocZip,
		p.CreatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeletePolicy(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM policies WHERE policy_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) PolicyExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM policies WHERE policy_id = $1)`, id)
}
