package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const announcementColumns = `announcement_id, title, body, publish_at, expire_at, created_by, created_at`

func scanAnnouncement(row pgx.Row) (models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.PublishAt,
		&a.ExpireAt,
		&a.CreatedBy,
		&a.CreatedAt,
	)
	return a, err
}

func (s *Postgres) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY announcement_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (s *Postgres) GetAnnouncement(ctx context.Context, id int64) (models.Announcement, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE announcement_id = $1`, id)
	a, err := scanAnnouncement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Announcement{}, ErrNotFound
	}
	return a, err
}

func (s *Postgres) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	const query = `
		INSERT INTO announcements (title, body, publish_at, expire_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING announcement_id
	`
	return s.pool.QueryRow(ctx, query,
		a.Title,
		a.Body,
		a.PublishAt,
		a.ExpireAt,
		a.CreatedBy,
		a.CreatedAt,
	).Scan(&a.ID)
}

func (s *Postgres) UpdateAnnouncement(ctx context.Context, a models.Announcement) error {
	const query = `
		UPDATE announcements
		SET title = $2, body = $3, publish_at = $4, expire_at = $5, created_by = $6, created_at = $7
		WHERE announcement_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.PublishAt,
		a.ExpireAt,
		a.CreatedBy,
		a.CreatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteAnnouncement(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM announcements WHERE announcement_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
