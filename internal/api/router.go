package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-suggester/internal/api/handlers/health"
	"recipe-suggester/internal/api/handlers/ingredient"
	recipeHandler "recipe-suggester/internal/api/handlers/recipe"
	"recipe-suggester/internal/api/middleware"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Validator   ingredient.Validator
	Detector    ingredient.Detector
	DecodeImage ingredient.ImageDecoder
	Generator   recipeHandler.Generator
	Store       recipeHandler.Store
	Nutrition   recipeHandler.Nutrition
	Tokens      middleware.TokenParser
	Ping        health.Pinger
	Providers   health.ProviderStatus

	// GenerationTimeout 生成路由的期限，需涵蓋整條提供者鏈與保存；0 表示不設期限
	GenerationTimeout time.Duration
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Validator == nil || deps.Generator == nil || deps.Store == nil || deps.Nutrition == nil || deps.Detector == nil {
		return nil, fmt.Errorf("missing router dependencies")
	}
	if err := common.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("failed to register validations: %w", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件，requestid 需在 logger 之前
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		router.Use(middleware.RateLimit(limiter))
	}

	// 生成路由另有期限，其餘路由共用 RequestTimeout
	timeout := requestTimeout(cfg.Server.RequestTimeout)
	generationTimeout := requestTimeout(deps.GenerationTimeout)

	healthHandler := health.NewHandler(cfg.App.Version, deps.Providers, deps.Ping)
	router.GET("/health", timeout, healthHandler.HealthCheck)
	router.GET("/ready", timeout, healthHandler.ReadinessCheck)
	router.GET("/live", timeout, healthHandler.LivenessCheck)

	ingredientHandler := ingredient.NewHandler(deps.Validator, deps.Detector, deps.DecodeImage, cfg.Vision.MaxBytes)
	recipes := recipeHandler.NewHandler(deps.Generator, deps.Store, deps.Nutrition)
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	api := router.Group("/api")
	{
		ingredientGroup := api.Group("/ingredients", timeout)
		{
			ingredientGroup.POST("/validate", ingredientHandler.Validate)
			ingredientGroup.POST("/validate-batch", ingredientHandler.ValidateBatch)
			ingredientGroup.GET("/autocomplete", ingredientHandler.Autocomplete)
			ingredientGroup.GET("/search", ingredientHandler.Search)
			ingredientGroup.POST("/detect", ingredientHandler.Detect)
		}

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/generate",
				generationTimeout,
				middleware.Deduplication(dedup),
				middleware.OptionalAuth(deps.Tokens),
				recipes.Generate,
			)
			recipeGroup.POST("/nutrition-facts", timeout, recipes.NutritionFacts)

			owned := recipeGroup.Group("", timeout, middleware.RequireAuth(deps.Tokens))
			owned.GET("", recipes.List)
			owned.GET("/:id", recipes.Get)
			owned.DELETE("/:id", recipes.Delete)
			owned.POST("/:id/favorite", recipes.ToggleFavorite)
		}
	}

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Duration("generation_timeout", deps.GenerationTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 為每個請求設定期限，處理器未回應且已逾時則回傳 504；timeout <= 0 時不設期限
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Error: common.ErrGatewayTimeout.Message,
			})
		}
	}
}
