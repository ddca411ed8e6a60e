package common

import (
	"errors"
	"net/http"
)

// ErrorResponse API 錯誤響應結構
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CustomError 自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 對外顯示的錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 Wrap 過的錯誤仍可用 errors.Is 判斷
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap 以預定義錯誤為基礎附加原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// WithMessage 以預定義錯誤為基礎替換對外訊息
func (e *CustomError) WithMessage(message string) *CustomError {
	return NewError(e.Code, message, e.Status, e.Err)
}

// StatusOf 取得錯誤對應的 HTTP 狀態碼
func StatusOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeTooLarge        = "PAYLOAD_TOO_LARGE"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeBadGateway      = "BAD_GATEWAY"
	ErrCodeGatewayTimeout  = "GATEWAY_TIMEOUT"
	ErrCodeFavoriteLimit   = "FAVORITE_LIMIT"
	ErrCodeInvalidImage    = "INVALID_IMAGE"
	ErrCodeCacheFull       = "CACHE_FULL"
	ErrCodeCacheMiss       = "CACHE_MISS"
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "Authentication required", http.StatusUnauthorized, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrPayloadTooLarge = NewError(ErrCodeTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrBadGateway      = NewError(ErrCodeBadGateway, "Upstream service error", http.StatusBadGateway, nil)
	ErrGatewayTimeout  = NewError(ErrCodeGatewayTimeout, "Request timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrFavoriteLimit   = NewError(ErrCodeFavoriteLimit, "Favorite limit reached", http.StatusBadRequest, nil)
	ErrInvalidImage    = NewError(ErrCodeInvalidImage, "Invalid image", http.StatusBadRequest, nil)
	ErrCacheFull       = NewError(ErrCodeCacheFull, "Cache full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss       = NewError(ErrCodeCacheMiss, "Cache miss", http.StatusNotFound, nil)
)
