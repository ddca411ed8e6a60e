// Package gemini 以 Google Gemini 作為付費等級的提供者。
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/infrastructure/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client Gemini 客戶端
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ provider.Provider = (*Client)(nil)

// NewClient 創建 Gemini 客戶端
func NewClient(ctx context.Context, cfg config.PremiumTierConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}

	return &Client{client: client, model: cfg.Model, timeout: timeout}, nil
}

// Name 模型名稱
func (c *Client) Name() string {
	return c.model
}

// Timeout 逾時時間
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Generate 生成回應，每次呼叫建立獨立的 model 設定以免互相干擾
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SetTemperature(float32(temperature))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: %w", provider.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("gemini: %w", provider.ErrEmptyResponse)
	}
	return out, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	return c.client.Close()
}
