// Package provider 定義文字生成能力的共同介面。
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyResponse 提供者回傳空內容
var ErrEmptyResponse = errors.New("empty response from provider")

// DefaultTimeout 未設定時單次呼叫的上限
const DefaultTimeout = 30 * time.Second

// Provider 定義 AI 提供者介面
type Provider interface {
	// Name 模型識別名稱，會記錄在食譜的 ai_model_used
	Name() string

	// Generate 依 prompt 生成文字
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	// Timeout 單次呼叫的逾時時間
	Timeout() time.Duration
}
