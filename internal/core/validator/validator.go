// Package validator 將使用者輸入的食材與食材表比對，提供修正、建議與自動完成。
package validator

import (
	"context"
	"strings"
	"unicode/utf8"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/foodsearch"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	batchConcurrency = 4

	externalValidatePageSize = 10
	externalValidateProducts = 5
	externalMinIndicators    = 2.0
)

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
}

// FoodSearcher 外部食品資料庫
type FoodSearcher interface {
	SearchProducts(ctx context.Context, query string, pageSize int) ([]foodsearch.Product, error)
}

// Validator 食材驗證器，可被多個請求共用
type Validator struct {
	catalog  *catalog.Catalog
	names    []string
	searcher FoodSearcher
}

// New 創建驗證器，searcher 為 nil 時不查詢外部資料庫
func New(c *catalog.Catalog, searcher FoodSearcher) *Validator {
	return &Validator{
		catalog:  c,
		names:    c.Names(),
		searcher: searcher,
	}
}

// Validate 依序嘗試拼字修正、完全相符、模糊比對與外部搜尋，第一個命中者勝出
func (v *Validator) Validate(ctx context.Context, ingredient string) Result {
	term := strings.ToLower(strings.TrimSpace(ingredient))
	res := Result{Original: term}

	if utf8.RuneCountInString(term) < 2 {
		res.Outcome = NoMatch{}
		return res
	}

	if corrected, ok := v.catalog.Correction(term); ok {
		res.Outcome = TypoCorrection{Corrected: corrected}
		return res
	}

	if v.catalog.Contains(term) {
		res.Outcome = ExactMatch{Name: term}
		return res
	}

	ranked := rank(term, v.names)
	if fuzzy, ok := fuzzyOutcome(ranked); ok {
		res.Outcome = fuzzy
		return res
	}

	if ext, ok := v.searchExternal(ctx, term); ok {
		res.Outcome = ext
		return res
	}

	res.Outcome = NoMatch{Suggestions: namesOf(ranked[:min(3, len(ranked))])}
	return res
}

// ValidateList 逐項驗證，結果順序與輸入相同
func (v *Validator) ValidateList(ctx context.Context, ingredients []string) []Result {
	results := make([]Result, len(ingredients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, ingredient := range ingredients {
		i, ingredient := i, ingredient
		g.Go(func() error {
			results[i] = v.Validate(gctx, ingredient)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CategoryOf 查詢食材分類
func (v *Validator) CategoryOf(name string) (string, bool) {
	return v.catalog.CategoryOf(name)
}

func fuzzyOutcome(ranked []scored) (FuzzyMatch, bool) {
	var high []scored
	for _, m := range ranked {
		if m.score < fuzzyThreshold {
			break
		}
		high = append(high, m)
	}
	if len(high) == 0 {
		return FuzzyMatch{}, false
	}

	return FuzzyMatch{
		Corrected:   high[0].name,
		Score:       high[0].score,
		Suggestions: namesOf(high[1:min(3, len(high))]),
	}, true
}

// searchExternal 在外部資料庫中累計食品指標，錯誤一律視為未命中
func (v *Validator) searchExternal(ctx context.Context, term string) (ExternalMatch, bool) {
	if v.searcher == nil || utf8.RuneCountInString(term) < 3 || stopWords[term] {
		return ExternalMatch{}, false
	}

	products, err := v.searcher.SearchProducts(ctx, term, externalValidatePageSize)
	if err != nil {
		common.LogWarn("external food search failed", zap.String("term", term), zap.Error(err))
		return ExternalMatch{}, false
	}

	var indicators float64
	for i, p := range products {
		if i >= externalValidateProducts {
			break
		}
		if !p.HasAnyCategory("en:foods", "en:ingredients") {
			continue
		}
		switch {
		case strings.Contains(strings.ToLower(p.IngredientsText), term):
			indicators += 1
		case strings.Contains(strings.ToLower(p.ProductName), term):
			indicators += 0.5
		}
	}

	if indicators < externalMinIndicators {
		return ExternalMatch{}, false
	}
	return ExternalMatch{Name: term, Indicators: indicators}, true
}
