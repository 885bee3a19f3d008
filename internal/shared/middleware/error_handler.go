package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/response"
)

// ErrorHandler là nơi duy nhất render lỗi: handler chỉ c.Error(err) rồi return.
// Body: {"message": ..., "stack": ...}, stack chỉ có khi không phải production.
func ErrorHandler(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		kind := apperror.KindOf(err)
		status := apperror.HTTPStatus(kind)

		message := apperror.PublicMessage(err)
		if !isProduction && kind == apperror.KindInternal {
			message = err.Error()
		}

		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Int("status", status).
				Msg("Request failed")
		}

		var stack *string
		if !isProduction {
			s := fmt.Sprintf("%+v", err)
			stack = &s
		}
		response.Error(c, status, message, stack)
	}
}

// NotFound dùng cho router.NoRoute
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperror.New(apperror.KindNotFound, "Not found - "+c.Request.URL.RequestURI()))
	}
}
