package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const maxLabelResults = 20

// LabelClient Google Vision 標籤辨識 REST 客戶端
type LabelClient struct {
	client *resty.Client
	apiKey string
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// NewLabelClient 創建客戶端，未設定 API key 時回傳 nil
func NewLabelClient(cfg config.VisionConfig) *LabelClient {
	if cfg.APIKey == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &LabelClient{client: client, apiKey: cfg.APIKey}
}

// DetectLabels 回傳圖片的標籤描述
func (c *LabelClient) DetectLabels(ctx context.Context, jpegData []byte) ([]string, error) {
	body := annotateRequest{
		Requests: []annotateImageRequest{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(jpegData)},
			Features: []feature{{Type: "LABEL_DETECTION", MaxResults: maxLabelResults}},
		}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post("/images:annotate")
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("vision API returned status %d: %s", resp.StatusCode(), common.Truncate(resp.String(), 200))
	}

	var result annotateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(result.Responses) == 0 {
		return nil, nil
	}
	if e := result.Responses[0].Error; e != nil && e.Message != "" {
		return nil, fmt.Errorf("vision API error: %s", e.Message)
	}

	labels := make([]string, 0, len(result.Responses[0].LabelAnnotations))
	for _, l := range result.Responses[0].LabelAnnotations {
		labels = append(labels, l.Description)
	}
	return labels, nil
}
