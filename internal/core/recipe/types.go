// Package recipe 負責組 prompt、依序呼叫 AI 提供者，並把回應解析成結構化食譜。
package recipe

import (
	"fmt"

	"recipe-suggester/internal/pkg/common"
)

const (
	// DefaultTitle 無法取得標題時使用
	DefaultTitle = "Generated Recipe"
	// MissingInstructions 無法取得步驟時使用
	MissingInstructions = "Recipe instructions not available."
	// ErrorTitle 錯誤食譜的標題
	ErrorTitle = "API Error"
	// DefaultServingSize 未指定份量時使用
	DefaultServingSize = 2

	parseErrorMessage = "Error parsing recipe response"
	errorMessageLimit = 200
)

// GeneratedRecipe 生成的食譜，尚未保存
type GeneratedRecipe struct {
	Title           string   `json:"title"`
	Ingredients     []string `json:"ingredients"`
	Instructions    string   `json:"instructions"`
	MarkdownContent string   `json:"markdown_content"`
	AIModelUsed     string   `json:"ai_model_used"`
	IsError         bool     `json:"is_error"`
}

// GenerateRequest 生成食譜的請求
type GenerateRequest struct {
	Ingredients        []string
	DietaryPreferences string
	ServingSize        int
	PreferPremium      bool
	Authenticated      bool
	RequestID          string
}

// ErrorRecipe 以錯誤食譜代替例外，讓呼叫端永遠拿到一筆結果
func ErrorRecipe(message string) GeneratedRecipe {
	return GeneratedRecipe{
		Title:       ErrorTitle,
		Ingredients: []string{},
		Instructions: fmt.Sprintf(
			"Sorry, the recipe generation service is currently unavailable. %s. Please try again later or contact support if the issue persists.",
			common.Truncate(message, errorMessageLimit),
		),
		IsError: true,
	}
}
