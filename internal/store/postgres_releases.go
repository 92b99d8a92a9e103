package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const releaseColumns = `version, start_date, rollout_date, complete_date, notes, hotfix_notes`

func scanRelease(row pgx.Row) (models.Release, error) {
	var r models.Release
	err := row.Scan(
		&r.Version,
		&r.StartDate,
		&r.RolloutDate,
		&r.CompleteDate,
		&r.Notes,
		&r.HotfixNotes,
	)
	return r, err
}

func (s *Postgres) ListReleases(ctx context.Context) ([]models.Release, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+releaseColumns+` FROM releases ORDER BY start_date DESC NULLS LAST, version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []models.Release
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, r)
	}
	return releases, rows.Err()
}

func (s *Postgres) GetRelease(ctx context.Context, version string) (models.Release, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+releaseColumns+` FROM releases WHERE version = $1`, version)
	r, err := scanRelease(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Release{}, ErrNotFound
	}
	return r, err
}

func (s *Postgres) CreateRelease(ctx context.Context, r models.Release) error {
	const query = `
		INSERT INTO releases (version, start_date, rollout_date, complete_date, notes, hotfix_notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query,
		r.Version,
		r.StartDate,
		r.RolloutDate,
		r.CompleteDate,
		r.Notes,
		r.HotfixNotes,
	)
	return err
}

func (s *Postgres) UpdateRelease(ctx context.Context, r models.Release) error {
	// The version is the identity and is never rewritten.
	const query = `
		UPDATE releases
		SET start_date = $2, rollout_date = $3, complete_date = $4, notes = $5, hotfix_notes = $6
		WHERE version = $1
	`
	cmd, err := s.pool.Exec(ctx, query,
		r.Version,
		r.StartDate,
		r.RolloutDate,
		r.CompleteDate,
		r.Notes,
		r.HotfixNotes,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteRelease(ctx context.Context, version string) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM releases WHERE version = $1`, version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
