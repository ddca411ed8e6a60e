package middleware

import (
	"recipe-suggester/internal/core/auth"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// TokenParser 驗證 bearer token
type TokenParser interface {
	ParseToken(raw string) (string, error)
}

// OptionalAuth 有合法 token 時記錄使用者，無效 token 視為匿名
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := auth.BearerToken(c.GetHeader("Authorization")); ok && parser != nil {
			userID, err := parser.ParseToken(token)
			if err != nil {
				common.LogDebug("ignoring invalid optional token", zap.Error(err))
			} else {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// RequireAuth 必須帶合法 bearer token
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok || parser == nil {
			common.AbortWithError(c, auth.ErrMissingToken)
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			common.AbortWithError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID 取得已驗證的使用者 id
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
