package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"bloggerum-backend/internal/shared/apperror"
)

// Gin context keys
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

var ErrNotAuthenticated = apperror.New(apperror.KindAuthentication, "Not authorized")

// SessionResolver đổi cookie token thành userId
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// IdentityLoader nạp user hiện tại. User đã bị xoá phải trả về lỗi kind NotFound.
type IdentityLoader func(ctx context.Context, userID string) (interface{}, error)

// RequireSession chặn request chưa đăng nhập.
//
//	không cookie / chữ ký sai / sid không còn  -> 401
//	sid còn nhưng user đã bị xoá              -> 404
//	hợp lệ                                     -> set userID + user vào context
//
// isMissing phân biệt "session không tồn tại" với lỗi Redis.
func RequireSession(sessions SessionResolver, loadUser IdentityLoader, cookieName string, isMissing func(error) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			abortWithError(c, ErrNotAuthenticated)
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if isMissing(err) {
				abortWithError(c, ErrNotAuthenticated)
				return
			}
			abortWithError(c, apperror.Upstream(err, "Session store unavailable"))
			return
		}

		user, err := loadUser(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// UserIDFrom đọc userID đã được RequireSession set
func UserIDFrom(c *gin.Context) (string, error) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", ErrNotAuthenticated
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.New("invalid userID in context")
	}
	return id, nil
}
