// Package recipe 食譜生成、營養查詢與使用者食譜管理的 HTTP 處理器
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recipe-suggester/internal/api/middleware"
	"recipe-suggester/internal/core/nutrition"
	recipeService "recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/core/store"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Generator 食譜生成
type Generator interface {
	Generate(ctx context.Context, req recipeService.GenerateRequest) []recipeService.GeneratedRecipe
}

// Store 使用者食譜儲存
type Store interface {
	Save(ctx context.Context, in store.SaveInput) (int64, error)
	ListByUser(ctx context.Context, userID string, favoritesOnly bool) ([]store.Recipe, error)
	Get(ctx context.Context, userID string, id int64) (*store.Recipe, error)
	Delete(ctx context.Context, userID string, id int64) error
	ToggleFavorite(ctx context.Context, userID string, id int64) (bool, error)
}

// Nutrition 營養查詢
type Nutrition interface {
	Facts(ctx context.Context, ingredients []string, servingSize int) (*nutrition.Facts, error)
}

const (
	noIngredientsMessage = "No ingredients provided"
	servingSizeMessage   = "serving_size must be an integer between 1 and 50"

	// saveTimeout 保存不受請求期限影響，但仍有自己的上限
	saveTimeout = 5 * time.Second
)

// Handler 食譜處理器
type Handler struct {
	generator Generator
	store     Store
	nutrition Nutrition
}

// NewHandler 創建食譜處理器
func NewHandler(g Generator, s Store, n Nutrition) *Handler {
	return &Handler{generator: g, store: s, nutrition: n}
}

// GenerateRequest 生成食譜請求
type GenerateRequest struct {
	Ingredients        []string `json:"ingredients" binding:"notblank"`
	DietaryPreferences string   `json:"dietary_preferences"`
	ServingSize        int      `json:"serving_size" binding:"omitempty,min=1,max=50"`
	UsePremiumProvider bool     `json:"use_premium_provider"`
}

// GenerateResponse 生成結果，saved_ids 與 recipes 一一對應，未保存者為 null
type GenerateResponse struct {
	Recipes  []recipeService.GeneratedRecipe `json:"recipes"`
	Saved    bool                            `json:"saved"`
	SavedIDs []*int64                        `json:"saved_ids"`
}

// NutritionRequest 營養查詢請求
type NutritionRequest struct {
	Ingredients []string `json:"ingredients" binding:"notblank"`
	ServingSize int      `json:"serving_size" binding:"omitempty,min=1,max=50"`
}

// Generate POST /api/recipes/generate
func (h *Handler) Generate(c *gin.Context) {
	rid := requestid.Get(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid generate request", zap.Error(err), zap.String("request_id", rid))
		common.WriteError(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		common.WriteError(c, http.StatusBadRequest, noIngredientsMessage)
		return
	}

	serving := req.ServingSize
	if serving == 0 {
		serving = recipeService.DefaultServingSize
	}

	userID, authenticated := middleware.UserID(c)
	common.LogInfo("generating recipe",
		zap.Strings("ingredients", ingredients),
		zap.Int("serving_size", serving),
		zap.Bool("authenticated", authenticated),
		zap.Bool("premium_requested", req.UsePremiumProvider),
		zap.String("request_id", rid),
	)

	recipes := h.generator.Generate(c.Request.Context(), recipeService.GenerateRequest{
		Ingredients:        ingredients,
		DietaryPreferences: req.DietaryPreferences,
		ServingSize:        serving,
		PreferPremium:      req.UsePremiumProvider,
		Authenticated:      authenticated,
		RequestID:          rid,
	})

	resp := GenerateResponse{Recipes: recipes, SavedIDs: make([]*int64, len(recipes))}
	if authenticated && h.store != nil {
		prompt := recipeService.BuildPrompt(ingredients, req.DietaryPreferences, serving)
		for i, r := range recipes {
			if r.IsError {
				continue
			}
			id, err := h.save(c.Request.Context(), store.SaveInput{
				Recipe:              r,
				UserID:              userID,
				OriginalIngredients: ingredients,
				DietaryPreferences:  req.DietaryPreferences,
				ServingSize:         serving,
				Prompt:              prompt,
			})
			if err != nil {
				// 單筆保存失敗不影響生成結果
				common.LogError("failed to save recipe",
					zap.Error(err),
					zap.String("user_id", userID),
					zap.String("request_id", rid),
				)
				continue
			}
			resp.SavedIDs[i] = &id
			resp.Saved = true
		}
	}

	c.JSON(http.StatusOK, resp)
}

// NutritionFacts POST /api/recipes/nutrition-facts
func (h *Handler) NutritionFacts(c *gin.Context) {
	var req NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	ingredients := cleanList(req.Ingredients)
	if len(ingredients) == 0 {
		common.WriteError(c, http.StatusBadRequest, noIngredientsMessage)
		return
	}

	facts, err := h.nutrition.Facts(c.Request.Context(), ingredients, req.ServingSize)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, facts)
}

// List GET /api/recipes?favorites=true
func (h *Handler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	favoritesOnly, _ := strconv.ParseBool(c.Query("favorites"))

	recipes, err := h.store.ListByUser(c.Request.Context(), userID, favoritesOnly)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get GET /api/recipes/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	r, err := h.store.Get(c.Request.Context(), userID, id)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r})
}

// Delete DELETE /api/recipes/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.store.Delete(c.Request.Context(), userID, id); err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.LogInfo("recipe deleted", zap.Int64("recipe_id", id), zap.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// ToggleFavorite POST /api/recipes/:id/favorite
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	saved, err := h.store.ToggleFavorite(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrFavoriteLimit) {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
				Error:   common.ErrFavoriteLimit.Message,
				Message: store.ErrFavoriteLimit.Message,
			})
			return
		}
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_saved": saved})
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		common.AbortWithError(c, store.ErrRecipeNotFound)
		return 0, false
	}
	return id, true
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// save 生成可能用掉大部分請求期限，保存改用獨立的期限
func (h *Handler) save(ctx context.Context, in store.SaveInput) (int64, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	return h.store.Save(ctx, in)
}

// bindMessage 依綁定錯誤的欄位回傳對外訊息
func bindMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "serving_size" {
		return servingSizeMessage
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "ServingSize" {
				return servingSizeMessage
			}
		}
	}
	return noIngredientsMessage
}
