package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"

	"github.com/google/uuid"
)

// ParseStringToUUID trả về uuid.Nil nếu chuỗi rỗng hoặc sai format
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// GetEnvVariable lấy env var với fallback
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// RandomHex sinh chuỗi hex từ n bytes ngẫu nhiên (reset token, tên file ảnh)
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

type requestIDKey struct{}

// WithRequestID gắn request id vào context để job enqueue từ service mang theo được
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
