// Package auth 驗證外部簽發的 HS256 bearer token
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recipe-suggester/internal/pkg/common"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken token 無效
	ErrInvalidToken = common.ErrUnauthorized.WithMessage("Invalid token")
	// ErrTokenExpired token 已過期
	ErrTokenExpired = common.ErrUnauthorized.WithMessage("Token has expired")
	// ErrMissingToken 缺少 token
	ErrMissingToken = common.ErrUnauthorized.WithMessage("Authorization token is required")
)

// Verifier 驗證 token 並取出使用者 id
type Verifier struct {
	secret []byte
}

// NewVerifier 創建驗證器
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Configured 是否設定了密鑰
func (v *Verifier) Configured() bool {
	return v != nil && len(v.secret) > 0
}

func (v *Verifier) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return v.secret, nil
}

// ParseToken 驗證 token，回傳 sub（或 user_id）宣告
func (v *Verifier) ParseToken(raw string) (string, error) {
	if !v.Configured() {
		return "", ErrInvalidToken.Wrap(errors.New("jwt secret not configured"))
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken.Wrap(err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	userID := claimString(claims["sub"])
	if userID == "" {
		userID = claimString(claims["user_id"])
	}
	if userID == "" {
		return "", ErrInvalidToken.Wrap(errors.New("token has no subject"))
	}
	return userID, nil
}

// BearerToken 從 Authorization header 取出 token
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GenerateToken 簽發 token，供測試與本機開發使用
func (v *Verifier) GenerateToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
