package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const recipeColumns = `id, user_id, title, description, instructions, prep_time, cook_time, total_time,
	serving_size, dietary_tags, is_saved, original_ingredients, markdown_content, ai_model_used,
	generation_prompt, created_at, updated_at`

// Store 以 sqlx 實作的食譜儲存
type Store struct {
	db      *sqlx.DB
	catalog *catalog.Catalog
	now     func() time.Time
}

// New 創建 Store，catalog 用來決定新食材的分類
func New(db *sqlx.DB, c *catalog.Catalog) *Store {
	return &Store{db: db, catalog: c, now: time.Now}
}

// Save 在同一個交易內檢查上限、淘汰最舊的食譜、寫入新食譜與食材
func (s *Store) Save(ctx context.Context, in SaveInput) (int64, error) {
	if in.UserID == "" {
		return 0, fmt.Errorf("user id is required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.enforceRetention(ctx, tx, in.UserID); err != nil {
		return 0, err
	}

	now := s.now().UTC()
	serving := in.ServingSize
	if serving <= 0 {
		serving = 1
	}

	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO recipes (
			user_id, title, description, instructions, serving_size, dietary_tags, is_saved,
			original_ingredients, markdown_content, ai_model_used, generation_prompt, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		in.UserID,
		resolveTitle(in.Recipe),
		describe(in.OriginalIngredients),
		in.Recipe.Instructions,
		serving,
		dietaryTags(in.DietaryPreferences),
		false,
		strings.Join(in.OriginalIngredients, ", "),
		in.Recipe.MarkdownContent,
		in.Recipe.AIModelUsed,
		in.Prompt,
		now,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := s.insertIngredients(ctx, tx, id, in.Recipe.Ingredients); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recipe: %w", err)
	}

	common.LogInfo("recipe saved", zap.Int64("recipe_id", id), zap.String("user_id", in.UserID))
	return id, nil
}

// enforceRetention 已達上限時先淘汰非收藏中最舊的，全部都是收藏才淘汰最舊的收藏
func (s *Store) enforceRetention(ctx context.Context, tx *sqlx.Tx, userID string) error {
	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM recipes WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count < MaxRecipesPerUser {
		return nil
	}

	var ids []int64
	err := tx.SelectContext(ctx, &ids, tx.Rebind(`SELECT id FROM recipes WHERE user_id = ?
		ORDER BY is_saved ASC, created_at ASC, id ASC LIMIT ?`), userID, count-MaxRecipesPerUser+1)
	if err != nil {
		return fmt.Errorf("failed to select recipes to evict: %w", err)
	}

	for _, id := range ids {
		if err := deleteRecipe(ctx, tx, id); err != nil {
			return err
		}
		common.LogInfo("evicted old recipe", zap.Int64("recipe_id", id), zap.String("user_id", userID))
	}
	return nil
}

func (s *Store) insertIngredients(ctx context.Context, tx *sqlx.Tx, recipeID int64, lines []string) error {
	seen := make(map[int64]bool, len(lines))
	order := 0

	for _, line := range lines {
		parsed := ParseIngredientLine(line)
		if parsed.Name == "" {
			continue
		}

		ingredientID, err := s.resolveIngredient(ctx, tx, parsed.Name)
		if err != nil {
			return err
		}
		if seen[ingredientID] {
			common.LogWarn("duplicate ingredient skipped",
				zap.Int64("recipe_id", recipeID),
				zap.String("ingredient", parsed.Name),
			)
			continue
		}
		seen[ingredientID] = true

		_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO recipe_ingredients
			(recipe_id, ingredient_id, quantity, unit, preparation, order_index)
			VALUES (?, ?, ?, ?, ?, ?)`),
			recipeID, ingredientID, parsed.Quantity, parsed.Unit, parsed.Preparation, order)
		if err != nil {
			return fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
		order++
	}
	return nil
}

// resolveIngredient 取得食材 id，不存在時建立
func (s *Store) resolveIngredient(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	category := "other"
	if s.catalog != nil {
		if c, ok := s.catalog.CategoryOf(name); ok {
			category = c
		}
	}

	_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO ingredients (name, category) VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING`), name, category)
	if err != nil {
		return 0, fmt.Errorf("failed to create ingredient: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM ingredients WHERE name = ?`), name); err != nil {
		return 0, fmt.Errorf("failed to load ingredient: %w", err)
	}
	return id, nil
}

// ListByUser 依建立時間新到舊列出
func (s *Store) ListByUser(ctx context.Context, userID string, favoritesOnly bool) ([]Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ?`
	args := []interface{}{userID}
	if favoritesOnly {
		query += ` AND is_saved = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	recipes := []Recipe{}
	if err := s.db.SelectContext(ctx, &recipes, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if err := s.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get 取得使用者自己的食譜
func (s *Store) Get(ctx context.Context, userID string, id int64) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r, s.db.Rebind(`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	recipes := []Recipe{r}
	if err := s.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func (s *Store) attachIngredients(ctx context.Context, recipes []Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	byID := make(map[int64]int, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
		byID[recipes[i].ID] = i
		recipes[i].Ingredients = []RecipeIngredient{}
	}

	query, args, err := sqlx.In(`SELECT ri.recipe_id, i.name, i.category, ri.quantity, ri.unit, ri.preparation, ri.order_index
		FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (?) ORDER BY ri.recipe_id, ri.order_index`, ids)
	if err != nil {
		return fmt.Errorf("failed to build ingredient query: %w", err)
	}

	var rows []RecipeIngredient
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	for _, row := range rows {
		i := byID[row.RecipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, row)
	}
	return nil
}

// Delete 刪除使用者自己的食譜
func (s *Store) Delete(ctx context.Context, userID string, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owned int
	if err := tx.GetContext(ctx, &owned, tx.Rebind(`SELECT COUNT(*) FROM recipes WHERE id = ? AND user_id = ?`), id, userID); err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if owned == 0 {
		return ErrRecipeNotFound
	}

	if err := deleteRecipe(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ToggleFavorite 切換收藏狀態並回傳新狀態，第 6 個收藏回傳 ErrFavoriteLimit
func (s *Store) ToggleFavorite(ctx context.Context, userID string, id int64) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var saved bool
	err = tx.GetContext(ctx, &saved, tx.Rebind(`SELECT is_saved FROM recipes WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrRecipeNotFound
		}
		return false, fmt.Errorf("failed to get recipe: %w", err)
	}

	if !saved {
		var favorites int
		err := tx.GetContext(ctx, &favorites, tx.Rebind(`SELECT COUNT(*) FROM recipes WHERE user_id = ? AND is_saved = ?`), userID, true)
		if err != nil {
			return false, fmt.Errorf("failed to count favorites: %w", err)
		}
		if favorites >= MaxFavoritesPerUser {
			return false, ErrFavoriteLimit
		}
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE recipes SET is_saved = ?, updated_at = ? WHERE id = ?`), !saved, s.now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update favorite: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit favorite: %w", err)
	}
	return !saved, nil
}

func deleteRecipe(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete recipe ingredients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM recipes WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// resolveTitle 標題缺失時沿用與解析器相同的標題擷取
func resolveTitle(r recipe.GeneratedRecipe) string {
	title := strings.TrimSpace(r.Title)
	if title != "" && title != recipe.DefaultTitle {
		return title
	}
	if t, ok := recipe.ExtractTitle(r.MarkdownContent); ok {
		return t
	}
	return recipe.DefaultTitle
}

func describe(ingredients []string) string {
	if len(ingredients) == 0 {
		return ""
	}
	return "Made with " + strings.Join(ingredients, ", ")
}

func dietaryTags(prefs string) string {
	var tags []string
	for _, p := range strings.Split(prefs, ",") {
		if t := strings.ToLower(strings.TrimSpace(p)); t != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ",")
}
