package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Providers   ProvidersConfig  `mapstructure:"providers"`
	Generation  GenerationConfig `mapstructure:"generation"`
	Nutrition   NutritionConfig  `mapstructure:"nutrition"`
	FoodSearch  FoodSearchConfig `mapstructure:"food_search"`
	Vision      VisionConfig     `mapstructure:"vision"`
	Cache       CacheConfig      `mapstructure:"cache"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig 資料庫設定，driver 為 postgres 或 sqlite3
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AuthConfig 驗證 bearer token 用的密鑰
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ProvidersConfig AI provider 分級設定
type ProvidersConfig struct {
	Free    FreeTierConfig    `mapstructure:"free"`
	Premium PremiumTierConfig `mapstructure:"premium"`
}

// FreeTierConfig OpenAI 相容端點，依序嘗試 Models
type FreeTierConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Models  []string      `mapstructure:"models"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PremiumTierConfig Gemini 設定
type PremiumTierConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GenerationConfig 生成參數
type GenerationConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// NutritionConfig CalorieNinjas 設定
type NutritionConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FoodSearchConfig Open Food Facts 設定
type FoodSearchConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// VisionConfig 圖片標籤辨識設定
type VisionConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	MaxDimension uint          `mapstructure:"max_dimension"`
	MaxBytes     int64         `mapstructure:"max_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置，backend 為 memory 或 redis
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定，.env 由呼叫端先以 godotenv 載入
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"database.dsn":              {"DATABASE_URL"},
		"database.driver":           {"DATABASE_DRIVER"},
		"auth.jwt_secret":           {"JWT_SECRET", "SECRET_KEY"},
		"providers.free.api_key":    {"HF_ACCESS_TOKEN"},
		"providers.free.base_url":   {"FREE_PROVIDER_BASE_URL"},
		"providers.premium.api_key": {"GEMINI_API_KEY"},
		"providers.premium.enabled": {"PREMIUM_PROVIDER_ENABLED"},
		"nutrition.api_key":         {"CALORIE_NINJAS_API_KEY"},
		"nutrition.base_url":        {"CALORIE_NINJAS_BASE_URL"},
		"vision.api_key":            {"GOOGLE_VISION_API_KEY"},
		"cache.enabled":             {"CACHE_ENABLED"},
		"cache.backend":             {"CACHE_BACKEND"},
		"cache.redis_addr":          {"REDIS_ADDR"},
		"rate_limit.enabled":        {"RATE_LIMIT_ENABLED"},
		"rate_limit.requests":       {"RATE_LIMIT_REQUESTS"},
		"rate_limit.window":         {"RATE_LIMIT_WINDOW"},
		"dedup_window":              {"DEDUP_WINDOW"},
		"log_level":                 {"LOG_LEVEL"},
		"server.port":               {"PORT"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-suggester")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "75s")
	v.SetDefault("server.max_body_bytes", 10<<20)

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "file:recipes.db?_foreign_keys=on")

	v.SetDefault("providers.free.base_url", "https://router.huggingface.co/together/v1")
	v.SetDefault("providers.free.models", []string{
		"mistralai/Mixtral-8x7B-Instruct-v0.1",
		"meta-llama/Llama-3-8b-chat-hf",
	})
	v.SetDefault("providers.free.timeout", "30s")
	v.SetDefault("providers.premium.enabled", true)
	v.SetDefault("providers.premium.model", "gemini-1.5-flash")
	v.SetDefault("providers.premium.timeout", "30s")

	v.SetDefault("generation.max_tokens", 1000)
	v.SetDefault("generation.temperature", 0.7)

	v.SetDefault("nutrition.base_url", "https://api.calorieninjas.com/v1/nutrition")
	v.SetDefault("nutrition.timeout", "15s")

	v.SetDefault("food_search.enabled", true)
	v.SetDefault("food_search.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("food_search.user_agent", "recipe-suggester/1.0")
	v.SetDefault("food_search.timeout", "10s")

	v.SetDefault("vision.base_url", "https://vision.googleapis.com/v1")
	v.SetDefault("vision.max_dimension", 1024)
	v.SetDefault("vision.max_bytes", 10<<20)
	v.SetDefault("vision.timeout", "20s")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if cfg.Generation.MaxTokens <= 0 {
		return fmt.Errorf("invalid generation max tokens")
	}
	if cfg.Generation.Temperature < 0 || cfg.Generation.Temperature > 2 {
		return fmt.Errorf("invalid generation temperature")
	}

	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "memory":
			if cfg.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if cfg.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case "redis":
			if cfg.Cache.RedisAddr == "" {
				return fmt.Errorf("redis address is required")
			}
		default:
			return fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
