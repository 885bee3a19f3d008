package user

import "bloggerum-backend/internal/shared/apperror"

// Repository-level errors
var (
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "User not found")
	ErrEmailAlreadyExists = apperror.New(apperror.KindConflict, "User already exists")
)

// Service-level errors
var (
	ErrInvalidCredentials = apperror.New(apperror.KindAuthentication, "Invalid email or password")
	ErrResetTokenExpired  = apperror.New(apperror.KindAuthentication, "Token expired")
)
