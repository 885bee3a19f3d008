package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloggerum-backend/internal/shared/utils"
)

const (
	ContextRequestID = "request_id"
	HeaderRequestID  = "X-Request-ID"
)

// RequestID giữ X-Request-ID từ client (proxy) hoặc sinh mới
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(utils.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
