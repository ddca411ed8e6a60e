package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-suggester/internal/api"
	"recipe-suggester/internal/api/handlers/health"
	"recipe-suggester/internal/core/ai/gemini"
	"recipe-suggester/internal/core/ai/openai"
	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/core/auth"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/foodsearch"
	"recipe-suggester/internal/core/nutrition"
	"recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/core/store"
	"recipe-suggester/internal/core/validator"
	"recipe-suggester/internal/core/vision"
	"recipe-suggester/internal/infrastructure/cache"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/infrastructure/database"
	"recipe-suggester/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const generationSlack = 10 * time.Second

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("configuration loaded",
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("free_api_key", config.MaskAPIKey(cfg.Providers.Free.APIKey)),
		zap.Strings("free_models", cfg.Providers.Free.Models),
		zap.String("premium_model", cfg.Providers.Premium.Model),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// 只在快取開啟但初始化失敗時才 Fatal
	c, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if c != nil {
		defer c.Close()
	}

	cat := catalog.Default()

	var searcher validator.FoodSearcher
	if cfg.FoodSearch.Enabled {
		searcher = foodsearch.NewClient(cfg.FoodSearch, c)
	}
	ingredientValidator := validator.New(cat, searcher)

	ctx := context.Background()
	var premium provider.Provider
	if cfg.Providers.Premium.Enabled {
		gc, err := gemini.NewClient(ctx, cfg.Providers.Premium)
		if err != nil {
			common.LogWarn("premium provider unavailable", zap.Error(err))
		} else {
			defer gc.Close()
			premium = gc
		}
	}
	free := openai.NewTier(cfg.Providers.Free)
	if len(free) == 0 && premium == nil {
		common.LogWarn("no recipe providers configured, generation will return error recipes")
	}
	generator := recipe.NewGenerator(premium, free, cfg.Generation)
	// 整條提供者鏈加上保存與解析的餘裕
	generationTimeout := generator.Budget() + generationSlack

	nutritionService := nutrition.NewService(cfg.Nutrition, c)

	var labels vision.LabelDetector
	if lc := vision.NewLabelClient(cfg.Vision); lc != nil {
		labels = lc
	}
	detector := vision.NewDetector(labels, cat, cfg.Vision)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	if !verifier.Configured() {
		common.LogWarn("JWT secret not set, all requests are treated as anonymous")
	}

	router, err := api.SetupRouter(cfg, api.Dependencies{
		Validator:   ingredientValidator,
		Detector:    detector,
		DecodeImage: vision.DecodeDataURI,
		Generator:   generator,
		Store:       store.New(db, cat),
		Nutrition:   nutritionService,
		Tokens:      verifier,
		Ping:        func(ctx context.Context) error { return database.Ping(ctx, db) },
		Providers: health.ProviderStatus{
			FreeModels: len(free),
			Premium:    premium != nil,
			Nutrition:  nutritionService.Configured(),
			Vision:     labels != nil,
		},
		GenerationTimeout: generationTimeout,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: max(cfg.Server.WriteTimeout, generationTimeout+generationSlack),
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("server exited")
}
