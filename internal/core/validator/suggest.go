package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	defaultAutocompleteLimit = 10
	defaultSearchLimit       = 15

	autocompletePageSize = 20
	autocompleteProducts = 10
	searchPageSize       = 30
	searchProducts       = 20

	sourceLocal    = "local"
	sourceExternal = "external"
)

var suggestionTags = []string{"en:foods", "en:ingredients", "en:snacks", "en:beverages"}

// Suggestion 自動完成與搜尋的候選項
type Suggestion struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description,omitempty"`
}

// Autocomplete 先取食材表子字串相符，不足 limit 時才補上外部結果
func (v *Validator) Autocomplete(ctx context.Context, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < 2 {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = defaultAutocompleteLimit
	}

	results := v.localMatches(q, false)
	if len(results) < limit {
		results = append(results, v.externalAutocomplete(ctx, q)...)
	}

	return finalize(results, q, limit)
}

// Search 與 Autocomplete 相同流程，但帶有描述並推測外部結果的分類
func (v *Validator) Search(ctx context.Context, query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < 2 {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results := v.localMatches(q, true)
	if len(results) < limit {
		results = append(results, v.externalSearch(ctx, q)...)
	}

	return finalize(results, q, limit)
}

func (v *Validator) localMatches(q string, describe bool) []Suggestion {
	var out []Suggestion
	for _, e := range v.catalog.Entries() {
		if !strings.Contains(e.Name, q) {
			continue
		}
		s := Suggestion{
			Name:       e.Name,
			Category:   e.Category,
			Source:     sourceLocal,
			Confidence: 1.0,
		}
		if describe {
			s.Description = fmt.Sprintf("%s (%s)", e.Name, e.Category)
		}
		out = append(out, s)
	}
	return out
}

func (v *Validator) externalAutocomplete(ctx context.Context, q string) []Suggestion {
	if v.searcher == nil {
		return nil
	}
	products, err := v.searcher.SearchProducts(ctx, q, autocompletePageSize)
	if err != nil {
		common.LogWarn("external autocomplete failed", zap.String("query", q), zap.Error(err))
		return nil
	}

	var out []Suggestion
	for i, p := range products {
		if i >= autocompleteProducts {
			break
		}
		if !p.HasAnyCategory(suggestionTags...) {
			continue
		}

		name := strings.ToLower(p.ProductName)
		if strings.Contains(name, q) {
			for _, word := range strings.Fields(name) {
				if strings.Contains(word, q) && len(word) > 2 {
					out = append(out, externalSuggestion(word, "unknown", 0.8, ""))
				}
			}
		}

		text := strings.ToLower(p.IngredientsText)
		if strings.Contains(text, q) {
			for _, part := range strings.Split(text, ",") {
				part = strings.TrimSpace(part)
				if strings.Contains(part, q) && len(part) > 2 {
					out = append(out, externalSuggestion(part, "unknown", 0.8, ""))
				}
			}
		}
	}
	return out
}

func (v *Validator) externalSearch(ctx context.Context, q string) []Suggestion {
	if v.searcher == nil {
		return nil
	}
	products, err := v.searcher.SearchProducts(ctx, q, searchPageSize)
	if err != nil {
		common.LogWarn("external ingredient search failed", zap.String("query", q), zap.Error(err))
		return nil
	}

	var out []Suggestion
	for i, p := range products {
		if i >= searchProducts {
			break
		}
		if p.ProductName == "" || !p.HasAnyCategory(suggestionTags...) {
			continue
		}

		category := inferCategory(p.CategoriesTags)
		for _, word := range strings.Fields(strings.ToLower(p.ProductName)) {
			if strings.Contains(word, q) && len(word) > 2 {
				desc := fmt.Sprintf("%s (found in %s)", word, p.ProductName)
				out = append(out, externalSuggestion(word, category, 0.7, desc))
			}
		}
	}
	return out
}

func externalSuggestion(name, category string, confidence float64, desc string) Suggestion {
	return Suggestion{
		Name:        name,
		Category:    category,
		Source:      sourceExternal,
		Confidence:  confidence,
		Description: desc,
	}
}

// inferCategory 以分類標籤推測食材分類
func inferCategory(tags []string) string {
	checks := []struct{ keyword, category string }{
		{"dairy", "dairy"},
		{"meat", "meats"},
		{"vegetable", "vegetables"},
		{"fruit", "fruits"},
		{"grain", "grains"},
	}
	for _, c := range checks {
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), c.keyword) {
				return c.category
			}
		}
	}
	return "unknown"
}

// finalize 依名稱去重，按信心值、查詢字串位置、名稱排序後截斷
func finalize(items []Suggestion, q string, limit int) []Suggestion {
	seen := make(map[string]bool, len(items))
	out := make([]Suggestion, 0, len(items))
	for _, s := range items {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		pi, pj := strings.Index(out[i].Name, q), strings.Index(out[j].Name, q)
		if pi != pj {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
