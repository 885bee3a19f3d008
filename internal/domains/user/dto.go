package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// NormalizeEmail: trim + lowercase, email lưu và so sánh ở dạng này
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var passwordRules = []validation.Rule{
	validation.Required.Error("password is required"),
	validation.RuneLength(6, 128).Error("password must be 6-128 characters"),
}

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password, passwordRules...),
	)
}

type LoginRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	ShouldRememberUser bool   `json:"shouldRememberUser"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ========================================
// PASSWORD DTOs
// ========================================

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type ChangePasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, passwordRules...),
	)
}

type ValidatePasswordRequest struct {
	Password string `json:"password"`
}

type ValidatePasswordResponse struct {
	Valid bool `json:"valid"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateProfileRequest đến từ multipart form.
// Thứ tự ưu tiên: Avatar mới > ShouldRemoveAvatar > Name/Bio
type UpdateProfileRequest struct {
	Avatar             []byte
	ShouldRemoveAvatar bool
	Name               string
	Bio                string
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.RuneLength(0, 100)),
		validation.Field(&r.Bio, validation.RuneLength(0, 500)),
	)
}
