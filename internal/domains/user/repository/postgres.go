package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/domains/user"
	"bloggerum-backend/internal/shared"
	"bloggerum-backend/pkg/cache"
)

const userCacheTTL = 15 * time.Minute

const userColumns = `id, name, email, password_hash, avatar, all_avatars, bio, created_at, updated_at`

// postgresRepository implement user.Repository, đọc theo id đi qua Redis (cache-aside)
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKey(id uuid.UUID) string {
	return shared.UserCachePrefix + id.String()
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.AllAvatars,
		&u.Bio,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.AllAvatars == nil {
		u.AllAvatars = []string{}
	}
	return &u, nil
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, avatar, all_avatars, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if u.AllAvatars == nil {
		u.AllAvatars = []string{}
	}

	err := r.pool.QueryRow(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Avatar,
		u.AllAvatars,
		u.Bio,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		// 23505 = unique_violation trên users_email_key
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

// FindByID: cache hit trả luôn, miss thì query DB rồi set lại cache
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	// STEP 1: CHECK CACHE
	key := cacheKey(id)
	var cached user.User
	found, err := r.cache.Get(ctx, key, &cached)
	if err == nil && found {
		return &cached, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}

	// STEP 2: CACHE MISS - QUERY DATABASE
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, errors.Wrapf(err, "find user %s", id)
	}

	// STEP 3: WRITE BACK (lỗi cache không làm fail request)
	if err := r.cache.Set(ctx, key, u, userCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("user cache write failed")
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return u, nil
}

// ========================================
// UPDATES (luôn invalidate cache)
// ========================================

func (r *postgresRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $2, bio = $3, avatar = $4, all_avatars = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query, u.ID, u.Name, u.Bio, u.Avatar, u.AllAvatars).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return errors.Wrapf(err, "update profile %s", u.ID)
	}

	r.invalidate(ctx, u.ID)
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return errors.Wrapf(err, "update password %s", id)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("user_id", id.String()).Msg("user cache invalidate failed")
	}
}
