// Package foodsearch 封裝 Open Food Facts 文字搜尋。
package foodsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recipe-suggester/internal/infrastructure/cache"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Product Open Food Facts 產品中用得到的欄位
type Product struct {
	ProductName     string   `json:"product_name"`
	IngredientsText string   `json:"ingredients_text"`
	CategoriesTags  []string `json:"categories_tags"`
	Brands          string   `json:"brands"`
}

// HasAnyCategory 產品是否帶有任一分類標籤
func (p Product) HasAnyCategory(tags ...string) bool {
	for _, have := range p.CategoriesTags {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

type searchResponse struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// Client Open Food Facts 客戶端
type Client struct {
	client *resty.Client
	cache  cache.Cache
}

// NewClient 創建客戶端，cache 可為 nil
func NewClient(cfg config.FoodSearchConfig, c cache.Cache) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{client: client, cache: c}
}

// SearchProducts 以文字搜尋產品
func (c *Client) SearchProducts(ctx context.Context, query string, pageSize int) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := cache.Key("off", query, strconv.Itoa(pageSize))
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key); err == nil {
			var products []Product
			if err := common.ParseJSON(cached, &products); err == nil {
				return products, nil
			}
		}
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search_terms":  query,
			"search_simple": "1",
			"action":        "process",
			"json":          "1",
			"page_size":     strconv.Itoa(pageSize),
		}).
		Get("/cgi/search.pl")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Open Food Facts: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Open Food Facts returned status %d: %s", resp.StatusCode(), common.Truncate(resp.String(), 200))
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Open Food Facts response: %w", err)
	}

	common.LogDebug("food search completed",
		zap.String("query", query),
		zap.Int("products", len(result.Products)),
		zap.Duration("duration", time.Since(start)),
	)

	if c.cache != nil {
		if data, err := common.ToJSON(result.Products); err == nil {
			if err := c.cache.Set(ctx, key, data); err != nil {
				common.LogWarn("failed to cache food search", zap.Error(err))
			}
		}
	}

	return result.Products, nil
}
