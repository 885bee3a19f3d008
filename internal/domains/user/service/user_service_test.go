package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/domains/user"
	"bloggerum-backend/internal/infrastructure/email"
	"bloggerum-backend/internal/shared/apperror"
)

// ========================================
// STUBS
// ========================================

type memRepo struct {
	users     map[uuid.UUID]*user.User
	failWrite error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *memRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	cp.AllAvatars = append([]string{}, u.AllAvatars...)
	return &cp, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memRepo) UpdateProfile(_ context.Context, u *user.User) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubTokens struct {
	issued map[string]string
}

func (t *stubTokens) IssueResetToken(_ context.Context, userID string) (string, error) {
	if t.issued == nil {
		t.issued = map[string]string{}
	}
	token := "tok-" + userID
	t.issued[token] = userID
	return token, nil
}

func (t *stubTokens) ConsumeResetToken(_ context.Context, token string) (string, error) {
	userID, ok := t.issued[token]
	if !ok {
		return "", errors.New("reset token not found")
	}
	delete(t.issued, token)
	return userID, nil
}

type stubMailer struct {
	sent []email.ResetPasswordData
}

func (m *stubMailer) EnqueueResetEmail(_ context.Context, data email.ResetPasswordData) error {
	m.sent = append(m.sent, data)
	return nil
}

type stubImages struct {
	uploaded []image.UploadInput
	deleted  []string
}

func (s *stubImages) Upload(_ context.Context, in image.UploadInput) (string, error) {
	s.uploaded = append(s.uploaded, in)
	return "http://minio/blog/" + in.Prefix + "new.webp", nil
}

func (s *stubImages) Delete(_ context.Context, ref string) error { return nil }

func (s *stubImages) DeleteOrQueue(_ context.Context, ref, _ string) {
	s.deleted = append(s.deleted, ref)
}

func (s *stubImages) KeyFromRef(ref string) string { return ref }

type fixture struct {
	svc    user.Service
	repo   *memRepo
	tokens *stubTokens
	mailer *stubMailer
	images *stubImages
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newMemRepo(),
		tokens: &stubTokens{},
		mailer: &stubMailer{},
		images: &stubImages{},
	}
	f.svc = NewUserService(f.repo, f.tokens, f.mailer, f.images, Options{
		ClientURL:     "http://localhost:3000/",
		ResetTokenTTL: 72 * time.Hour,
	})
	return f
}

func (f *fixture) register(t *testing.T) *user.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), user.RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

// ========================================
// TESTS
// ========================================

func TestRegister(t *testing.T) {
	f := newFixture()
	u := f.register(t)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, user.DefaultBio, u.Bio)
	assert.Nil(t, u.Avatar)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))

	_, err := f.svc.Register(context.Background(), user.RegisterRequest{
		Name: "Other", Email: "ADA@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	_, err = f.svc.Register(context.Background(), user.RegisterRequest{
		Name: "Bad", Email: "not-an-email", Password: "secret123",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	registered := f.register(t)

	u, err := f.svc.Login(context.Background(), user.LoginRequest{Email: " ADA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = f.svc.Login(context.Background(), user.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), user.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestForgotAndChangePassword(t *testing.T) {
	f := newFixture()
	registered := f.register(t)
	ctx := context.Background()

	// email không tồn tại: không lỗi, không gửi mail
	require.NoError(t, f.svc.ForgotPassword(ctx, user.ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Empty(t, f.mailer.sent)

	require.NoError(t, f.svc.ForgotPassword(ctx, user.ForgotPasswordRequest{Email: "ada@example.com"}))
	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	token := "tok-" + registered.ID.String()
	assert.Equal(t, "http://localhost:3000/change-password/"+token, mail.ResetLink)
	assert.Equal(t, "3 days", mail.ExpiresIn)

	u, err := f.svc.ChangePassword(ctx, user.ChangePasswordRequest{Token: token, Password: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = f.svc.Login(ctx, user.LoginRequest{Email: "ada@example.com", Password: "newpass1"})
	assert.NoError(t, err)

	// token chỉ dùng được 1 lần
	_, err = f.svc.ChangePassword(ctx, user.ChangePasswordRequest{Token: token, Password: "another1"})
	assert.ErrorIs(t, err, user.ErrResetTokenExpired)

	_, err = f.svc.ChangePassword(ctx, user.ChangePasswordRequest{Password: "another1"})
	assert.ErrorIs(t, err, user.ErrResetTokenExpired)
}

func TestChangePassword_InvalidPasswordKeepsToken(t *testing.T) {
	f := newFixture()
	registered := f.register(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, user.ForgotPasswordRequest{Email: "ada@example.com"}))
	token := "tok-" + registered.ID.String()

	_, err := f.svc.ChangePassword(ctx, user.ChangePasswordRequest{Token: token, Password: "x"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, f.tokens.issued, token)

	u, err := f.svc.ChangePassword(ctx, user.ChangePasswordRequest{Token: token, Password: "goodpass1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestChangePassword_UserGone(t *testing.T) {
	f := newFixture()
	f.tokens.issued = map[string]string{"orphan": uuid.NewString()}

	_, err := f.svc.ChangePassword(context.Background(), user.ChangePasswordRequest{Token: "orphan", Password: "newpass1"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestValidatePassword(t *testing.T) {
	f := newFixture()
	u := f.register(t)

	ok, err := f.svc.ValidatePassword(context.Background(), u.ID.String(), "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.ValidatePassword(context.Background(), u.ID.String(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("new avatar appends history", func(t *testing.T) {
		f := newFixture()
		u := f.register(t)

		updated, err := f.svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{
			Avatar: []byte("img"),
			Name:   "ignored",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Avatar)
		assert.Equal(t, "http://minio/blog/avatars/new.webp", *updated.Avatar)
		assert.Equal(t, []string{*updated.Avatar}, updated.AllAvatars)
		assert.Equal(t, "Ada", updated.Name)

		require.Len(t, f.images.uploaded, 1)
		assert.True(t, f.images.uploaded[0].Resize)
	})

	t.Run("avatar persist failure removes upload", func(t *testing.T) {
		f := newFixture()
		u := f.register(t)
		f.repo.failWrite = errors.New("db down")

		_, err := f.svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{Avatar: []byte("img")})
		require.Error(t, err)
		assert.Equal(t, []string{"http://minio/blog/avatars/new.webp"}, f.images.deleted)
	})

	t.Run("remove avatar keeps history", func(t *testing.T) {
		f := newFixture()
		u := f.register(t)
		_, err := f.svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{Avatar: []byte("img")})
		require.NoError(t, err)

		updated, err := f.svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{ShouldRemoveAvatar: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Avatar)
		assert.Len(t, updated.AllAvatars, 1)
		assert.Empty(t, f.images.deleted)
	})

	t.Run("name and bio, blanks ignored", func(t *testing.T) {
		f := newFixture()
		u := f.register(t)

		updated, err := f.svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{Name: " Grace ", Bio: "  "})
		require.NoError(t, err)
		assert.Equal(t, "Grace", updated.Name)
		assert.Equal(t, user.DefaultBio, updated.Bio)
	})
}
