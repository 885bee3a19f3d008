package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	imagehandler "bloggerum-backend/internal/domains/image/handler"
	"bloggerum-backend/internal/domains/user"
	"bloggerum-backend/internal/infrastructure/session"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/middleware"
	"bloggerum-backend/internal/shared/response"
	"bloggerum-backend/pkg/logger"
)

// Sessions là phần cookie-session của session.Store
type Sessions interface {
	Create(ctx context.Context, userID string, remember bool) (*session.Issued, error)
	Destroy(ctx context.Context, token string) error
}

type CookieOptions struct {
	Name   string
	Secure bool
}

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service  user.Service
	sessions Sessions
	cookie   CookieOptions
}

func NewUserHandler(service user.Service, sessions Sessions, cookie CookieOptions) *UserHandler {
	return &UserHandler{
		service:  service,
		sessions: sessions,
		cookie:   cookie,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	// STEP 2: CALL SERVICE
	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// STEP 3: LOGIN NGAY SAU KHI ĐĂNG KÝ
	if err := h.startSession(c, u.ID.String(), false); err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, u.Profile())
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	u, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.startSession(c, u.ID.String(), req.ShouldRememberUser); err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, u.Profile())
}

// Logout POST /api/users/logout
// Cookie luôn bị xoá kể cả khi session đã hết hạn
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			logger.Warn("failed to destroy session", map[string]interface{}{"error": err.Error()})
		}
	}

	h.clearCookie(c)
	response.Message(c, http.StatusOK, "Successfully logged out")
}

// ========================================
// PASSWORD ENDPOINTS
// ========================================

// ForgotPassword POST /api/users/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		_ = c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "If an account exists for this email, a password reset link has been sent")
}

// ChangePassword POST /api/users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	u, err := h.service.ChangePassword(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.startSession(c, u.ID.String(), false); err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, u.Profile())
}

// ValidatePassword POST /api/users/validate-password (private)
func (h *UserHandler) ValidatePassword(c *gin.Context) {
	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req user.ValidatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	valid, err := h.service.ValidatePassword(c.Request.Context(), userID, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, user.ValidatePasswordResponse{Valid: valid})
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetProfile GET /api/users/profile (private)
func (h *UserHandler) GetProfile(c *gin.Context) {
	if v, ok := c.Get(middleware.ContextUser); ok {
		if u, ok := v.(*user.User); ok {
			response.JSON(c, http.StatusOK, u.Profile())
			return
		}
	}

	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, u.Profile())
}

// GetPublicProfile GET /api/users/profile/:id
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, u.PublicProfile())
}

// UpdateProfile PUT /api/users/profile (private, multipart)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	// STEP 1: AUTH
	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// STEP 2: PARSE FORM
	avatar, err := imagehandler.ReadFormFile(c, "avatar")
	if err != nil {
		_ = c.Error(err)
		return
	}
	req := user.UpdateProfileRequest{
		Avatar: avatar,
		Name:   c.PostForm("name"),
		Bio:    c.PostForm("bio"),
	}
	if raw := c.PostForm("shouldRemoveAvatar"); raw != "" {
		remove, err := strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(apperror.Validation("Invalid shouldRemoveAvatar flag", err))
			return
		}
		req.ShouldRemoveAvatar = remove
	}

	// STEP 3: CALL SERVICE
	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, u.Profile())
}

// ========================================
// COOKIE HELPERS
// ========================================

// startSession tạo session và set cookie.
// Không remember: cookie không có Max-Age (mất khi đóng trình duyệt)
func (h *UserHandler) startSession(c *gin.Context, userID string, remember bool) error {
	issued, err := h.sessions.Create(c.Request.Context(), userID, remember)
	if err != nil {
		return apperror.Upstream(err, "Failed to create session")
	}

	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    issued.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if issued.Remember {
		cookie.MaxAge = int(issued.TTL / time.Second)
	}
	http.SetCookie(c.Writer, cookie)
	return nil
}

func (h *UserHandler) clearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
