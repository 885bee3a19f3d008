package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"bloggerum-backend/internal/domains/post"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func scanView(row pgx.Row) (*post.PostView, error) {
	var v post.PostView
	err := row.Scan(
		&v.ID, &v.Title, &v.Body, &v.Thumbnail, &v.Tags, &v.Version, &v.CreatedAt, &v.UpdatedAt,
		&v.User.ID, &v.User.Name, &v.User.Avatar, &v.User.Bio,
	)
	if err != nil {
		return nil, err
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return &v, nil
}

// ========================================
// QUERIES
// ========================================

func (r *postgresRepository) List(ctx context.Context, c post.ListCriteria) ([]post.PostView, int, error) {
	listQ, countQ := buildListQueries(c)

	var total int
	if err := r.pool.QueryRow(ctx, countQ.SQL, countQ.Args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	views := []post.PostView{}
	if total == 0 || c.Offset >= total {
		return views, total, nil
	}

	rows, err := r.pool.Query(ctx, listQ.SQL, listQ.Args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list posts")
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scan post")
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "iterate posts")
	}
	return views, total, nil
}

func (r *postgresRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*post.PostView, error) {
	q := buildViewByIDQuery(id)
	v, err := scanView(r.pool.QueryRow(ctx, q.SQL, q.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, errors.Wrapf(err, "find post view %s", id)
	}
	return v, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	err := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Body, &p.Thumbnail, &p.Tags, &p.SearchWords,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, errors.Wrapf(err, "find post %s", id)
	}
	return &p, nil
}

// ========================================
// MUTATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (user_id, title, body, thumbnail, tags, search_words)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.UserID, p.Title, p.Body, p.Thumbnail, nonNil(p.Tags), nonNil(p.SearchWords),
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "insert post")
	}
	return nil
}

// Update: WHERE version = expected; không có row nào thì phân biệt not found / conflict
func (r *postgresRepository) Update(ctx context.Context, p *post.Post, expectedVersion int) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3, thumbnail = $4, tags = $5, search_words = $6,
		    version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $7
		RETURNING version, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Body, p.Thumbnail, nonNil(p.Tags), nonNil(p.SearchWords), expectedVersion,
	).Scan(&p.Version, &p.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrapf(err, "update post %s", p.ID)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
		return errors.Wrapf(err, "check post %s", p.ID)
	}
	if !exists {
		return post.ErrPostNotFound
	}
	return post.ErrVersionConflict
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete post %s", id)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

// ========================================
// IMAGE SWEEP SUPPORT
// ========================================

func (r *postgresRepository) ReferencedThumbnails(ctx context.Context, urls []string) (map[string]struct{}, error) {
	refs := make(map[string]struct{})
	if len(urls) == 0 {
		return refs, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT thumbnail FROM posts WHERE thumbnail = ANY($1)
		UNION
		SELECT a FROM users, unnest(all_avatars) AS a WHERE a = ANY($1)
	`, urls)
	if err != nil {
		return nil, errors.Wrap(err, "query referenced thumbnails")
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "scan referenced thumbnails")
	}
	for _, u := range found {
		refs[u] = struct{}{}
	}
	return refs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
