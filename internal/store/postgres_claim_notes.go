package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"insureops/api/internal/models"
)

const claimNoteSelect = `
	SELECT n.note_id, n.claim_id, n.author_user_id, n.note_text, n.created_at, c.claim_number
	FROM claim_notes n
	LEFT JOIN claims c ON c.claim_id = n.claim_id
`

func scanClaimNote(row pgx.Row) (models.ClaimNote, error) {
	var n models.ClaimNote
	err := row.Scan(
		&n.ID,
		&n.ClaimID,
		&n.AuthorUserID,
		&n.NoteText,
		&n.CreatedAt,
		&n.ClaimNumber,
	)
	return n, err
}

func (s *Postgres) ListClaimNotes(ctx context.Context) ([]models.ClaimNote, error) {
	rows, err := s.pool.Query(ctx, claimNoteSelect+` ORDER BY n.note_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.ClaimNote
	for rows.Next() {
		n, err := scanClaimNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Postgres) GetClaimNote(ctx context.Context, id int64) (models.ClaimNote, error) {
	row := s.pool.QueryRow(ctx, claimNoteSelect+` WHERE n.note_id = $1`, id)
	n, err := scanClaimNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ClaimNote{}, ErrNotFound
	}
	return n, err
}

func (s *Postgres) CreateClaimNote(ctx context.Context, n *models.ClaimNote) error {
	const query = `
		INSERT INTO claim_notes (claim_id, author_user_id, note_text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING note_id
	`
	return s.pool.QueryRow(ctx, query,
		n.ClaimID,
		n.AuthorUserID,
		n.NoteText,
		n.CreatedAt,
	).Scan(&n.ID)
}

func (s *Postgres) UpdateClaimNote(ctx context.Context, n models.ClaimNote) error {
	const query = `
		UPDATE claim_notes
		SET claim_id = $2, author_user_id = $3, note_text = $4
		WHERE note_id = $1
	`
	cmd, err := s.pool.Exec(ctx, query, n.ID, n.ClaimID, n.AuthorUserID, n.NoteText)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteClaimNote(ctx context.Context, id int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM claim_notes WHERE note_id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
