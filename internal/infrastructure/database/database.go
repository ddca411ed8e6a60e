// Package database 開啟 sqlx 連線並建立資料表
package database

import (
	"context"
	"fmt"
	"time"

	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// Open 連線並建立資料表
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite3" {
		// SQLite 只用單一連線，:memory: 資料庫才不會在連線間消失
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	common.LogInfo("database ready", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate 依 driver 執行 CREATE TABLE IF NOT EXISTS
func Migrate(db *sqlx.DB) error {
	statements, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Ping 檢查資料庫連線
func Ping(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

var schemas = map[string][]string{
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT 'other'
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructions TEXT NOT NULL DEFAULT '',
			prep_time INTEGER,
			cook_time INTEGER,
			total_time INTEGER,
			serving_size INTEGER NOT NULL DEFAULT 1,
			dietary_tags TEXT NOT NULL DEFAULT '',
			is_saved BOOLEAN NOT NULL DEFAULT 0,
			original_ingredients TEXT NOT NULL DEFAULT '',
			markdown_content TEXT NOT NULL DEFAULT '',
			ai_model_used TEXT NOT NULL DEFAULT '',
			generation_prompt TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_user_created ON recipes (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
			quantity REAL,
			unit TEXT NOT NULL DEFAULT '',
			preparation TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			UNIQUE (recipe_id, ingredient_id)
		)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT 'other'
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructions TEXT NOT NULL DEFAULT '',
			prep_time INTEGER,
			cook_time INTEGER,
			total_time INTEGER,
			serving_size INTEGER NOT NULL DEFAULT 1,
			dietary_tags TEXT NOT NULL DEFAULT '',
			is_saved BOOLEAN NOT NULL DEFAULT FALSE,
			original_ingredients TEXT NOT NULL DEFAULT '',
			markdown_content TEXT NOT NULL DEFAULT '',
			ai_model_used TEXT NOT NULL DEFAULT '',
			generation_prompt TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_user_created ON recipes (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id BIGSERIAL PRIMARY KEY,
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id),
			quantity DOUBLE PRECISION,
			unit TEXT NOT NULL DEFAULT '',
			preparation TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			UNIQUE (recipe_id, ingredient_id)
		)`,
	},
}
