package response

import (
	"github.com/gin-gonic/gin"
)

// MessageBody là shape chung cho mọi response chỉ có thông báo
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody: stack là null ở production
type ErrorBody struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

// JSON trả thẳng payload, không bọc envelope
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

func Error(c *gin.Context, statusCode int, message string, stack *string) {
	c.JSON(statusCode, ErrorBody{Message: message, Stack: stack})
}
