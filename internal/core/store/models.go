// Package store 保存使用者的食譜，維持每人 10 筆、收藏 5 筆的上限。
package store

import (
	"time"

	"recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/pkg/common"
)

const (
	// MaxRecipesPerUser 每位使用者保存的食譜上限
	MaxRecipesPerUser = 10
	// MaxFavoritesPerUser 每位使用者收藏的上限
	MaxFavoritesPerUser = 5
)

var (
	// ErrRecipeNotFound 食譜不存在或不屬於該使用者
	ErrRecipeNotFound = common.ErrNotFound.WithMessage("Recipe not found")
	// ErrFavoriteLimit 收藏已達上限
	ErrFavoriteLimit = common.ErrFavoriteLimit.WithMessage("You can only have 5 favorite recipes. Remove one before adding another.")
)

// Recipe 已保存的食譜
type Recipe struct {
	ID                  int64              `db:"id" json:"id"`
	UserID              string             `db:"user_id" json:"user_id"`
	Title               string             `db:"title" json:"title"`
	Description         string             `db:"description" json:"description"`
	Instructions        string             `db:"instructions" json:"instructions"`
	PrepTime            *int               `db:"prep_time" json:"prep_time"`
	CookTime            *int               `db:"cook_time" json:"cook_time"`
	TotalTime           *int               `db:"total_time" json:"total_time"`
	ServingSize         int                `db:"serving_size" json:"serving_size"`
	DietaryTags         string             `db:"dietary_tags" json:"dietary_tags"`
	IsSaved             bool               `db:"is_saved" json:"is_saved"`
	OriginalIngredients string             `db:"original_ingredients" json:"original_ingredients"`
	MarkdownContent     string             `db:"markdown_content" json:"markdown_content"`
	AIModelUsed         string             `db:"ai_model_used" json:"ai_model_used"`
	GenerationPrompt    string             `db:"generation_prompt" json:"-"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
	Ingredients         []RecipeIngredient `db:"-" json:"ingredients"`
}

// RecipeIngredient 食譜與食材的關聯
type RecipeIngredient struct {
	RecipeID    int64    `db:"recipe_id" json:"-"`
	Name        string   `db:"name" json:"name"`
	Category    string   `db:"category" json:"category"`
	Quantity    *float64 `db:"quantity" json:"quantity"`
	Unit        string   `db:"unit" json:"unit"`
	Preparation string   `db:"preparation" json:"preparation,omitempty"`
	OrderIndex  int      `db:"order_index" json:"order_index"`
}

// SaveInput 保存一筆生成結果所需的資料
type SaveInput struct {
	Recipe              recipe.GeneratedRecipe
	UserID              string
	OriginalIngredients []string
	DietaryPreferences  string
	ServingSize         int
	Prompt              string
}
