package user

import "context"

// Service định nghĩa business logic layer contract
// id dạng string: id sai format được xử lý như không tồn tại
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, error)

	// Password
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (*User, error)
	ValidatePassword(ctx context.Context, userID string, password string) (bool, error)

	// Profile
	GetByID(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error)
}
