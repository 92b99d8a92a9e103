package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const claimSelect = `
	SELECT c.claim_id, c.policy_id, c.claim_number, c.status, c.date_of_loss, c.date_reported,
	       c.reserve_amount, c.paid_amount, c.memo, c.assigned_to, c.created_by, c.created_at,
	       e.name
	FROM claims c
	LEFT JOIN employees e ON e.employee_id = c.assigned_to
`

func scanClaim(row pgx.Row) (models.Claim, error) {
	var c models.Claim
	err := row.Scan(
		&c.ID,
		&c.PolicyID,
		&c.ClaimNumber,
		&c.Status,
		&c.DateOfLoss,
		&c.DateReported,
		&c.ReserveAmount,
		&c.PaidAmount,
		&c.Memo,
		&c.AssignedTo,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.AssignedEmployee,
	)
	return c, err
}

func (s *Postgres) ListClaims(ctx context.Context) ([]models.Claim, error) {
	rows, err := s.pool.Query(ctx, claimSelect+` ORDER BY c.claim_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []models.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (s *Postgres) GetClaim(ctx context.Context, id int64) (models.Claim, error) {
	row := s.pool.QueryRow(ctx, claimSelect+` WHERE c.claim_id = $1`, id)
	c, err := scanClaim(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Claim{}, ErrNotFound
	}
	return c, err
}

func (s *Postgres) CreateClaim(ctx context.Context, c *models.Claim) error {
	const query = `
		INSERT INTO claims (policy_id, claim_number, status, date_of_loss, date_reported,
		                    reserve_amount, paid_amount, memo, assigned_to, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING claim_id
	`
	return s.pool.QueryRow(ctx, query,
		c.PolicyID,
		c.ClaimNumber,
		c.Status,
		c.DateOfLoss,
		c.DateReported,
		c.ReserveAmount,
		c.PaidAmount,
		c.Memo,
		c.AssignedTo,
		c.CreatedBy,
		c.CreatedAt,
	).Scan(&c.ID)
}

func (s *Postgres) UpdateClaim(ctx context.Context, c models.Claim) error {
	const query = `
		UPDATE claims
		SET policy_id = $2, claim_number = $3, status = $4, date_of_loss = $5, date_reported = $6,
		    reserve_amount = $7, paid_amount = $8, memo = $9, assigned_to = $10, created_by = $11
		WHERE claim_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		c.ID,
		c.PolicyID,
		c.ClaimNumber,
		c.Status,
		c.DateOfLoss,
		c.DateReported,
		c.ReserveAmount,
		c.PaidAmount,
		c.Memo,
		c.AssignedTo,
		c.CreatedBy,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteClaim(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM claims WHERE claim_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) ClaimExists(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM claims WHERE claim_id = $1)`, id)
}

func (s *Postgres) ClaimNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error) {
	return s.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM claims WHERE claim_number = $1 AND claim_id <> $2)`,
		number, excludeID)
}
