package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bloggerum-backend/internal/shared"
	"bloggerum-backend/internal/shared/utils"
	"bloggerum-backend/pkg/jwt"
)

// ErrSessionNotFound: token hợp lệ nhưng sid không còn trong Redis (logout / hết hạn)
var ErrSessionNotFound = errors.New("session not found")

// ErrResetTokenNotFound: token quên mật khẩu không tồn tại hoặc đã dùng
var ErrResetTokenNotFound = errors.New("reset token not found")

// Options lấy từ config.SessionConfig
type Options struct {
	TTL           time.Duration
	RememberTTL   time.Duration
	ResetTokenTTL time.Duration
}

// Issued là kết quả tạo session, handler dùng để set cookie
type Issued struct {
	Token    string
	TTL      time.Duration
	Remember bool
}

// Store quản lý session + reset token trên Redis
//
//	bloggerum:sess:<sid>      -> userId (TTL = session lifetime)
//	forgot-password:<token>   -> userId (TTL = ResetTokenTTL)
type Store struct {
	client *redis.Client
	signer *jwt.Manager
	opts   Options
}

func NewStore(client *redis.Client, signer *jwt.Manager, opts Options) *Store {
	return &Store{client: client, signer: signer, opts: opts}
}

func sessionKey(sid string) string {
	return shared.SessionKeyPrefix + sid
}

func resetKey(token string) string {
	return shared.ForgotPasswordPrefix + token
}

// Create tạo session mới cho user, remember=true kéo dài lifetime
func (s *Store) Create(ctx context.Context, userID string, remember bool) (*Issued, error) {
	ttl := s.opts.TTL
	if remember {
		ttl = s.opts.RememberTTL
	}

	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(sid), userID, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.signer.Sign(sid, ttl)
	if err != nil {
		_ = s.client.Del(ctx, sessionKey(sid)).Err()
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return &Issued{Token: token, TTL: ttl, Remember: remember}, nil
}

// Resolve trả về userId từ cookie token
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	sid, err := s.signer.Parse(token)
	if err != nil {
		return "", ErrSessionNotFound
	}

	userID, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

// Destroy xoá session, token sai hoặc đã hết hạn thì bỏ qua
func (s *Store) Destroy(ctx context.Context, token string) error {
	sid, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// IssueResetToken tạo token 32 bytes hex, lưu userId với TTL nhiều ngày
func (s *Store) IssueResetToken(ctx context.Context, userID string) (string, error) {
	token, err := utils.RandomHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.client.Set(ctx, resetKey(token), userID, s.opts.ResetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ConsumeResetToken đọc và xoá token trong một lệnh (GETDEL), token chỉ dùng được một lần
func (s *Store) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrResetTokenNotFound
	}
	userID, err := s.client.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrResetTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}
	return userID, nil
}
