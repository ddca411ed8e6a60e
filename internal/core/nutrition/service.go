// Package nutrition 透過 CalorieNinjas 估算食材營養成分。
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"recipe-suggester/internal/infrastructure/cache"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured 未設定 API key
	ErrNotConfigured = common.NewError("NUTRITION_NOT_CONFIGURED", "Nutrition service is not configured", http.StatusServiceUnavailable, nil)
	// ErrNoData 查無可用的營養資料
	ErrNoData = common.NewError("NUTRITION_NO_DATA", "No nutrition data found for the ingredients", http.StatusBadGateway, nil)
)

var requiredFields = []string{"calories", "protein_g", "carbohydrates_total_g", "fat_total_g"}

// Item 單一食材的營養資料，保留 API 回傳的全部欄位
type Item map[string]any

// Facts 營養查詢結果
type Facts struct {
	Items       []Item `json:"items"`
	Query       string `json:"query"`
	ServingSize int    `json:"serving_size"`
}

// Service 營養查詢服務
type Service struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	cache   cache.Cache
}

// NewService 創建營養查詢服務，cache 可為 nil
func NewService(cfg config.NutritionConfig, c cache.Cache) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", cfg.APIKey)

	return &Service{
		client:  client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		cache:   c,
	}
}

// Configured 是否已設定 API key
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// Facts 查詢食材的營養成分
func (s *Service) Facts(ctx context.Context, ingredients []string, servingSize int) (*Facts, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if servingSize <= 0 {
		servingSize = 1
	}

	query := BuildQuery(ingredients, servingSize)
	if query == "" {
		return nil, common.ErrInvalidRequest.WithMessage("No ingredients provided")
	}

	items, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	valid := validItems(items)
	if len(valid) == 0 {
		return nil, ErrNoData
	}

	return &Facts{Items: valid, Query: query, ServingSize: servingSize}, nil
}

func (s *Service) fetch(ctx context.Context, query string) ([]Item, error) {
	key := cache.Key("nutrition", query)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var items []Item
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	common.LogDebug("nutrition query", zap.String("query", query))

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get(s.baseURL)
	if err != nil {
		return nil, common.ErrBadGateway.Wrap(fmt.Errorf("failed to call nutrition API: %w", err))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.ErrBadGateway.Wrap(fmt.Errorf("nutrition API returned status %d: %s",
			resp.StatusCode(), common.Truncate(resp.String(), 200)))
	}

	var result struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, common.ErrBadGateway.Wrap(fmt.Errorf("failed to parse nutrition response: %w", err))
	}

	if s.cache != nil && len(result.Items) > 0 {
		if data, err := common.ToJSON(result.Items); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				common.LogWarn("failed to cache nutrition response", zap.Error(err))
			}
		}
	}

	return result.Items, nil
}

// validItems 只保留必要欄位齊全的項目
func validItems(items []Item) []Item {
	valid := make([]Item, 0, len(items))
	for _, item := range items {
		ok := true
		for _, field := range requiredFields {
			if v, exists := item[field]; !exists || v == nil {
				ok = false
				break
			}
		}
		if ok {
			valid = append(valid, item)
		}
	}
	return valid
}

// portions 依食材種類估算每份克數
var portions = []struct {
	keywords []string
	grams    int
}{
	{[]string{"chicken", "beef", "meat", "pork", "lamb", "turkey"}, 150},
	{[]string{"rice", "pasta", "potato", "bread", "noodles"}, 80},
	{[]string{"vegetable", "tomato", "onion", "carrot", "broccoli", "spinach"}, 50},
	{[]string{"oil", "butter"}, 15},
	{[]string{"egg"}, 60},
	{[]string{"milk", "cheese", "yogurt"}, 120},
}

const defaultPortionGrams = 100

// BuildQuery 已含數量的食材原樣使用，其餘依份量補上克數，以 " and " 串接
func BuildQuery(ingredients []string, servingSize int) string {
	parts := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			continue
		}
		if strings.IndexFunc(ingredient, unicode.IsDigit) >= 0 {
			parts = append(parts, ingredient)
			continue
		}
		parts = append(parts, fmt.Sprintf("%dg %s", servingSize*portionGrams(ingredient), ingredient))
	}
	return strings.Join(parts, " and ")
}

func portionGrams(ingredient string) int {
	lower := strings.ToLower(ingredient)
	for _, p := range portions {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p.grams
			}
		}
	}
	return defaultPortionGrams
}
