// Package vision 從照片辨識食材：正規化圖片、呼叫標籤辨識，再過濾出食材名稱。
package vision

import (
	"context"
	"strings"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

const maxDetected = 10

// FallbackIngredients 辨識失敗時回傳
var FallbackIngredients = []string{"tomato", "onion", "garlic"}

var foodKeywords = []string{
	"food", "vegetable", "fruit", "meat", "dairy", "grain", "spice",
	"herb", "nut", "seed", "tomato", "onion", "garlic", "potato",
	"carrot", "lettuce", "spinach", "broccoli", "cauliflower",
	"bell pepper", "cucumber", "mushroom", "eggplant", "zucchini",
	"squash", "corn", "peas", "beans", "rice", "pasta", "bread",
	"cheese", "milk", "yogurt", "butter", "egg", "chicken", "beef",
	"pork", "fish", "shrimp", "salmon", "tuna", "apple", "banana",
	"orange", "lemon", "lime", "strawberry", "blueberry", "grape",
	"peach", "pear", "plum", "cherry", "mango", "pineapple",
	"coconut", "avocado", "olive", "almond", "walnut", "peanut",
	"cashew", "pistachio", "sunflower seed", "pumpkin seed",
	"flour", "sugar", "salt", "pepper", "oil", "vinegar",
	"soy sauce", "ketchup", "mustard", "mayonnaise",
}

var genericWords = map[string]bool{
	"food": true, "foods": true,
	"vegetable": true, "vegetables": true,
	"fruit": true, "fruits": true,
}

// LabelDetector 圖片標籤辨識
type LabelDetector interface {
	DetectLabels(ctx context.Context, jpegData []byte) ([]string, error)
}

// Detector 照片食材辨識
type Detector struct {
	labels       LabelDetector
	catalog      *catalog.Catalog
	maxDimension uint
	maxBytes     int64
}

// NewDetector 創建辨識器，labels 為 nil 時一律回傳預設食材
func NewDetector(labels LabelDetector, c *catalog.Catalog, cfg config.VisionConfig) *Detector {
	return &Detector{
		labels:       labels,
		catalog:      c,
		maxDimension: cfg.MaxDimension,
		maxBytes:     cfg.MaxBytes,
	}
}

// Detect 圖片無效時回傳 ErrInvalidImage，其餘失敗都回傳預設食材
func (d *Detector) Detect(ctx context.Context, data []byte) ([]string, error) {
	normalized, err := Normalize(data, d.maxDimension, d.maxBytes)
	if err != nil {
		return nil, err
	}

	if d.labels == nil {
		common.LogDebug("vision API not configured, using fallback ingredients")
		return fallback(), nil
	}

	labels, err := d.labels.DetectLabels(ctx, normalized)
	if err != nil {
		common.LogWarn("label detection failed", zap.Error(err))
		return fallback(), nil
	}

	ingredients := FilterLabels(labels, d.catalog)
	if len(ingredients) == 0 {
		return fallback(), nil
	}
	return ingredients, nil
}

// FilterLabels 保留食物相關標籤，去掉泛稱字詞後去重，最多 10 個
func FilterLabels(labels []string, c *catalog.Catalog) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, maxDetected)

	for _, label := range labels {
		text := strings.ToLower(strings.TrimSpace(label))
		if text == "" || !isFoodLabel(text, c) {
			continue
		}

		name := stripGeneric(text)
		if len(name) <= 2 || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)

		if len(out) == maxDetected {
			break
		}
	}
	return out
}

func isFoodLabel(text string, c *catalog.Catalog) bool {
	if c != nil && c.Contains(text) {
		return true
	}
	for _, kw := range foodKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func stripGeneric(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !genericWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func fallback() []string {
	return append([]string(nil), FallbackIngredients...)
}
