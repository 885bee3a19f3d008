package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"bloggerum-backend/internal/domains/tag"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

// EnsureExists: unique constraint trên name xử lý race khi 2 request cùng tạo 1 tag
func (r *postgresRepository) EnsureExists(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return errors.Wrapf(err, "ensure tag %q", name)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "scan tags")
	}
	return names, nil
}
