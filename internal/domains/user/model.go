package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultBio = "The quick brown fox jumps over the lazy dog."

// User là domain entity - ánh xạ 1:1 với bảng users
type User struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"` // luôn lowercase

	// json tag giữ lại để cache Redis round-trip được, không bao giờ render ra client
	PasswordHash string `db:"password_hash" json:"password_hash"`

	Avatar     *string  `db:"avatar" json:"avatar"`
	AllAvatars []string `db:"all_avatars" json:"all_avatars"` // append-only
	Bio        string   `db:"bio" json:"bio"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Profile là shape trả về cho chính chủ
type Profile struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar *string   `json:"avatar"`
	Bio    string    `json:"bio"`
}

// PublicProfile: không có email
type PublicProfile struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
	Bio    string    `json:"bio"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Bio: u.Bio}
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Bio: u.Bio}
}
