package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate_EmailFormatOnly(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain address", "a@x.com", false},
		{"domain without mx", "writer@no-mail.invalid", false},
		{"missing at", "not-an-email", true},
		{"missing domain", "a@", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RegisterRequest{Name: "A", Email: tt.email, Password: "secret123"}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestForgotPasswordRequestValidate(t *testing.T) {
	assert.NoError(t, ForgotPasswordRequest{Email: "a@x.com"}.Validate())
	assert.Error(t, ForgotPasswordRequest{Email: "nope"}.Validate())
	assert.Error(t, ForgotPasswordRequest{}.Validate())
}

func TestChangePasswordRequestValidate(t *testing.T) {
	assert.Error(t, ChangePasswordRequest{Token: "t", Password: "x"}.Validate())
	assert.NoError(t, ChangePasswordRequest{Token: "t", Password: "goodpass1"}.Validate())
}
