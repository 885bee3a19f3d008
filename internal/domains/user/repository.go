package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create insert user, set ID + timestamps.
	// Returns: ErrEmailAlreadyExists khi vi phạm unique index email
	Create(ctx context.Context, user *User) error

	// FindByID cache-aside qua Redis
	// Returns: ErrUserNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail, email đã normalize
	// Returns: ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile ghi name, bio, avatar, all_avatars và invalidate cache
	UpdateProfile(ctx context.Context, user *User) error

	// UpdatePassword ghi password_hash và invalidate cache
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
