package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store over a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
