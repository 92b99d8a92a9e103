package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const recordSelect = `
	SELECT r.document_id, r.file_name, r.url, r.uploaded_by, r.uploaded_at,
	       r.attached_to_type, r.attached_to_id, r.description, e.name
	FROM customer_records r
	LEFT JOIN employees e ON e.employee_id = r.uploaded_by
`

func scanCustomerRecord(row pgx.Row) (models.CustomerRecord, error) {
	var r models.CustomerRecord
	err := row.Scan(
		&r.ID,
		&r.FileName,
		&r.URL,
		&r.UploadedBy,
		&r.UploadedAt,
		&r.AttachedToType,
		&r.AttachedToID,
		&r.Description,
		&r.UploaderName,
	)
	return r, err
}

func (s *Postgres) ListCustomerRecords(ctx context.Context) ([]models.CustomerRecord, error) {
	rows, err := s.pool.Query(ctx, recordSelect+` ORDER BY r.document_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CustomerRecord
	for rows.Next() {
		r, err := scanCustomerRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Postgres) GetCustomerRecord(ctx context.Context, id int64) (models.CustomerRecord, error) {
	row := s.pool.QueryRow(ctx, recordSelect+` WHERE r.document_id = $1`, id)
	r, err := scanCustomerRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CustomerRecord{}, ErrNotFound
	}
	return r, err
}

func (s *Postgres) CreateCustomerRecord(ctx context.Context, r *models.CustomerRecord) error {
	const query = `
		INSERT INTO customer_records (file_name, url, uploaded_by, uploaded_at,
		                              attached_to_type, attached_to_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING document_id
	`
	return s.pool.QueryRow(ctx, query,
		r.FileName,
		r.URL,
		r.UploadedBy,
		r.UploadedAt,
		r.AttachedToType,
		r.AttachedToID,
		r.Description,
	).Scan(&r.ID)
}

func (s *Postgres) UpdateCustomerRecord(ctx context.Context, r models.CustomerRecord) error {
	const query = `
		UPDATE customer_records
		SET file_name = $2, url = $3, uploaded_by = $4,
		    attached_to_type = $5, attached_to_id = $6, description = $7
		WHERE document_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		r.ID,
		r.FileName,
		r.URL,
		r.UploadedBy,
		r.AttachedToType,
		r.AttachedToID,
		r.Description,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteCustomerRecord(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM customer_records WHERE document_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
