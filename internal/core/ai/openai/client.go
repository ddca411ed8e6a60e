// Package openai 實作 OpenAI 相容的 chat completions 提供者。
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat completions 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Response chat completions 響應
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message Message `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Client 單一模型的客戶端
type Client struct {
	client  *resty.Client
	model   string
	timeout time.Duration
}

var _ provider.Provider = (*Client)(nil)

// NewClient 創建客戶端
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey)

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// NewTier 依設定順序為每個模型建立一個提供者，未設定 API key 時回傳 nil
func NewTier(cfg config.FreeTierConfig) []provider.Provider {
	if cfg.APIKey == "" {
		common.LogWarn("free tier API key not set, generation will return error recipes")
		return nil
	}

	tier := make([]provider.Provider, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		tier = append(tier, NewClient(cfg.BaseURL, cfg.APIKey, model, cfg.Timeout))
	}
	return tier
}

// Name 模型名稱
func (c *Client) Name() string {
	return c.model
}

// Timeout 逾時時間
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	req := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	common.LogDebug("sending chat completion request",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to %s: %w", c.model, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d: %s", c.model, resp.StatusCode(), errorMessage(resp.Body()))
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse %s response: %w", c.model, err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%s: %w", c.model, provider.ErrEmptyResponse)
	}

	content := result.Choices[0].Message.Content
	common.LogDebug("chat completion succeeded",
		zap.String("model", c.model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}

// errorMessage 取出錯誤訊息，支援 {"error":{"message":..}} 與 {"error":".."} 兩種格式
func errorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return common.Truncate(nested.Error.Message, 200)
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return common.Truncate(flat.Error, 200)
	}

	return common.Truncate(strings.TrimSpace(string(body)), 200)
}
