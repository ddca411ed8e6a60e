package common

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError 寫入 {"error": msg} 錯誤響應
func WriteError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// AbortWithError 依錯誤類型決定狀態碼並寫入錯誤響應，5xx 的原始錯誤不對外輸出
func AbortWithError(c *gin.Context, err error) {
	status := StatusOf(err)
	message := err.Error()

	var ce *CustomError
	if errors.As(err, &ce) {
		message = ce.Message
	}
	if status >= 500 {
		LogError("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		)
		if ce == nil {
			message = ErrInternalError.Message
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
