package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorWithData writes an error response that still carries a data payload,
// for failures the client renders in place (such as a catalog view in its
// error state).
func ErrorWithData(c *gin.Context, code int, errCode, message string, data interface{}) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
		},
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}
