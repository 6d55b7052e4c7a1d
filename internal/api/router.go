package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authHandler "recipe-manager/internal/api/handlers/auth"
	"recipe-manager/internal/api/handlers/health"
	importHandler "recipe-manager/internal/api/handlers/importer"
	recipeHandler "recipe-manager/internal/api/handlers/recipe"
	tipHandler "recipe-manager/internal/api/handlers/tip"
	uploadHandler "recipe-manager/internal/api/handlers/upload"
	"recipe-manager/internal/api/middleware"
	"recipe-manager/internal/core/image"
	"recipe-manager/internal/core/importer/structured"
	"recipe-manager/internal/core/importer/vision"
	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
	"recipe-manager/internal/storage/supabase"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (15MB,截圖匯入可能帶多張圖片)
	maxBodySize = 15 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 全局中間件:請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	common.LogInfo("Initializing services",
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("supabase_url", cfg.Supabase.URL),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	store := supabase.NewClient(cfg)
	structuredExtractor := structured.NewExtractor(cfg)
	visionExtractor := vision.NewExtractor(cfg)
	imageService := image.NewService(cfg.Image.MaxSizeBytes)

	// 初始化處理器
	authH := authHandler.NewHandler(cfg)
	recipeH := recipeHandler.NewHandler(store)
	tipH := tipHandler.NewHandler(store)
	importH := importHandler.NewHandler(structuredExtractor, visionExtractor)
	uploadH := uploadHandler.NewHandler(imageService, store)

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg.App.Version))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 登入不需要認證,但受速率限制保護
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.RateLimit(cfg, limiter), authH.Login)
			authGroup.POST("/logout", authH.Logout)
		}

		// 其餘端點都需要認證 cookie
		authed := api.Group("")
		authed.Use(middleware.Auth(cfg))
		{
			recipeGroup := authed.Group("/recipes")
			{
				recipeGroup.GET("", recipeH.List)
				recipeGroup.POST("", recipeH.Create)
				recipeGroup.GET("/:id", recipeH.Get)
				recipeGroup.PUT("/:id", recipeH.Update)
				recipeGroup.DELETE("/:id", recipeH.Delete)
				recipeGroup.PATCH("/:id/favorite", recipeH.Favorite)
			}

			tipGroup := authed.Group("/tips")
			{
				tipGroup.GET("", tipH.List)
				tipGroup.POST("", tipH.Create)
				tipGroup.GET("/:id", tipH.Get)
				tipGroup.PUT("/:id", tipH.Update)
				tipGroup.DELETE("/:id", tipH.Delete)
			}

			// 匯入端點成本高,加上去重保護
			importGroup := authed.Group("/import")
			importGroup.Use(middleware.Deduplication(cfg))
			{
				importGroup.POST("/url", importH.FromURL)
				importGroup.POST("/screenshot", importH.FromScreenshots)
			}

			authed.POST("/uploads/image", uploadH.Image)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
