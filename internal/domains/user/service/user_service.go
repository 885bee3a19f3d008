package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/domains/user"
	"bloggerum-backend/internal/infrastructure/email"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/utils"
)

const bcryptCost = 10

// ResetTokens là phần reset-token của session.Store
type ResetTokens interface {
	IssueResetToken(ctx context.Context, userID string) (string, error)
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// Mailer: queue.Client, email được gửi bất đồng bộ bởi worker
type Mailer interface {
	EnqueueResetEmail(ctx context.Context, data email.ResetPasswordData) error
}

type Options struct {
	ClientURL     string        // link trong email: <ClientURL>/change-password/<token>
	ResetTokenTTL time.Duration // chỉ để hiển thị trong email
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	tokens ResetTokens
	mailer Mailer
	images image.Service
	opts   Options
}

func NewUserService(repo user.Repository, tokens ResetTokens, mailer Mailer, images image.Service, opts Options) user.Service {
	return &userService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		images: images,
		opts:   opts,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("Invalid user data", err)
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	// 3. CREATE (unique index trên LOWER(email) quyết định trùng lặp)
	newUser := &user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		AllAvatars:   []string{},
		Bio:          user.DefaultBio,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", newUser.ID.String()).Msg("User registered")
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

// ========================================
// PASSWORD
// ========================================

// ForgotPassword không báo lỗi khi email không tồn tại
func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperror.Validation("Invalid email", err)
	}

	u, err := s.repo.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Info().Msg("Forgot password requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokens.IssueResetToken(ctx, u.ID.String())
	if err != nil {
		return errors.Wrap(err, "issue reset token")
	}

	err = s.mailer.EnqueueResetEmail(ctx, email.ResetPasswordData{
		Email:     u.Email,
		Name:      u.Name,
		ResetLink: fmt.Sprintf("%s/change-password/%s", strings.TrimRight(s.opts.ClientURL, "/"), token),
		ExpiresIn: humanizeTTL(s.opts.ResetTokenTTL),
	})
	if err != nil {
		return apperror.Upstream(err, "Failed to send email")
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) (*user.User, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, user.ErrResetTokenExpired
	}

	// STEP 1: validate password mới, trước khi đốt token
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("Invalid password", err)
	}

	// STEP 2: consume token (single-use)
	userID, err := s.tokens.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		return nil, user.ErrResetTokenExpired
	}

	// STEP 3: load user
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// STEP 4: ghi hash mới
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	log.Info().Str("user_id", u.ID.String()).Msg("Password changed")
	return u, nil
}

func (s *userService) ValidatePassword(ctx context.Context, userID string, password string) (bool, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return checkPassword(u.PasswordHash, password), nil
}

// ========================================
// PROFILE
// ========================================

// GetByID: id sai format coi như không tồn tại
func (s *userService) GetByID(ctx context.Context, userID string) (*user.User, error) {
	id := utils.ParseStringToUUID(userID)
	if id == uuid.Nil {
		return nil, user.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile xử lý 1 trong 3 trường hợp theo thứ tự: avatar mới, xoá avatar, name/bio
func (s *userService) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("Invalid profile data", err)
	}

	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case len(req.Avatar) > 0:
		url, err := s.images.Upload(ctx, image.UploadInput{
			Data:   req.Avatar,
			Resize: true,
			Prefix: storage.PrefixAvatars,
		})
		if err != nil {
			return nil, err
		}
		u.Avatar = &url
		u.AllAvatars = append(u.AllAvatars, url)

		if err := s.repo.UpdateProfile(ctx, u); err != nil {
			// avatar mới chưa được tham chiếu, dọn luôn
			s.images.DeleteOrQueue(ctx, url, "avatar update rolled back")
			return nil, err
		}
		return u, nil

	case req.ShouldRemoveAvatar:
		if u.Avatar == nil {
			return u, nil
		}
		// ảnh cũ vẫn nằm trong all_avatars nên không xoá object
		u.Avatar = nil

	default:
		if name := strings.TrimSpace(req.Name); name != "" {
			u.Name = name
		}
		if bio := strings.TrimSpace(req.Bio); bio != "" {
			u.Bio = bio
		}
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ========================================
// HELPERS
// ========================================

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func humanizeTTL(ttl time.Duration) string {
	if ttl <= 0 {
		return ""
	}
	if ttl%(24*time.Hour) == 0 {
		return fmt.Sprintf("%d days", int(ttl/(24*time.Hour)))
	}
	return fmt.Sprintf("%d hours", int(ttl.Hours()))
}
