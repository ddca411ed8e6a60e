package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	errNoProviders = errors.New("no recipe providers configured")
	errParse       = errors.New(parseErrorMessage)
)

// Generator 依序呼叫付費與免費提供者，全部失敗時回傳錯誤食譜
type Generator struct {
	premium     provider.Provider
	free        []provider.Provider
	maxTokens   int
	temperature float64
}

// NewGenerator 創建生成器，premium 可為 nil
func NewGenerator(premium provider.Provider, free []provider.Provider, cfg config.GenerationConfig) *Generator {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &Generator{
		premium:     premium,
		free:        free,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
}

// PremiumAvailable 是否設定了付費提供者
func (g *Generator) PremiumAvailable() bool {
	return g.premium != nil
}

// Generate 永遠回傳恰好一筆食譜
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) []GeneratedRecipe {
	prompt := BuildPrompt(req.Ingredients, req.DietaryPreferences, req.ServingSize)

	var lastErr error

	// 付費等級需同時滿足：使用者要求、已登入、已設定
	if req.PreferPremium && req.Authenticated && g.premium != nil {
		r, err := g.attempt(ctx, g.premium, prompt, req)
		if err == nil {
			return []GeneratedRecipe{r}
		}
		lastErr = err
		common.LogWarn("premium provider failed, falling back to free tier",
			zap.String("provider", g.premium.Name()),
			zap.Error(err),
			zap.String("request_id", req.RequestID),
		)
	}

	for _, p := range g.free {
		r, err := g.attempt(ctx, p, prompt, req)
		if err == nil {
			return []GeneratedRecipe{r}
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errNoProviders
	}
	common.LogError("all recipe providers failed",
		zap.Error(lastErr),
		zap.String("request_id", req.RequestID),
	)
	return []GeneratedRecipe{ErrorRecipe(lastErr.Error())}
}

// Budget 依序嘗試所有提供者最多需要的時間
func (g *Generator) Budget() time.Duration {
	var total time.Duration
	if g.premium != nil {
		total += callTimeout(g.premium)
	}
	for _, p := range g.free {
		total += callTimeout(p)
	}
	return total
}

func callTimeout(p provider.Provider) time.Duration {
	if t := p.Timeout(); t > 0 {
		return t
	}
	return provider.DefaultTimeout
}

func (g *Generator) attempt(ctx context.Context, p provider.Provider, prompt string, req GenerateRequest) (GeneratedRecipe, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout(p))
	defer cancel()

	start := time.Now()
	raw, err := p.Generate(callCtx, prompt, g.maxTokens, g.temperature)
	common.LogProviderCall(p.Name(), time.Since(start), err, req.RequestID)
	if err != nil {
		return GeneratedRecipe{}, fmt.Errorf("%s: %w", p.Name(), err)
	}

	if !IsComplete(raw) {
		common.LogWarn("provider response looks incomplete",
			zap.String("provider", p.Name()),
			zap.Int("length", len(raw)),
			zap.String("request_id", req.RequestID),
		)
	}

	r := Parse(raw, req.Ingredients, p.Name())
	if r.IsError {
		return GeneratedRecipe{}, fmt.Errorf("%s: %w", p.Name(), errParse)
	}
	return r, nil
}
