package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/umanari145/blog-backend/internal/middleware"
	"github.com/umanari145/blog-backend/internal/services"
	"github.com/umanari145/blog-backend/pkg/lambda"
)

// maxBodySize caps request bodies at 1MB
const maxBodySize = 1 << 20

// slowRequestThreshold is the duration above which requests are logged as slow
const slowRequestThreshold = time.Second

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	BlogService services.BlogService
	MenuService services.MenuService
	AuthService services.AuthService

	// HealthCheck reports store reachability for /health; nil means always healthy
	HealthCheck func(ctx context.Context) error

	Logger           *logrus.Logger
	ExposeErrorTrace bool

	RateLimit      float64
	RateLimitBurst int
}

func (cfg *RouterConfig) renderer() *errorRenderer {
	return newErrorRenderer(cfg.ExposeErrorTrace, cfg.Logger)
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	errs := cfg.renderer()
	blogHandler := NewBlogHandler(cfg.BlogService, errs)
	menuHandler := NewMenuHandler(cfg.MenuService, errs)
	authHandler := NewAuthHandler(cfg.AuthService, errs)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": "blog-backend",
					"error":   err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "blog-backend",
			"version": "1.0.0",
		})
	})

	api := router.Group("/api")
	{
		blogs := api.Group("/blogs")
		{
			blogs.GET("", blogHandler.ListPosts)
			blogs.POST("", blogHandler.CreatePost)
			blogs.GET("/:postNo", blogHandler.GetPost)
			blogs.PUT("/:postNo", blogHandler.UpdatePost)
		}

		api.GET("/menus", menuHandler.GetMenus)
		api.POST("/login", authHandler.Login)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	// CORS, including preflight
	router.Use(middleware.CORS())

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxBodySize))
	router.Use(middleware.ContentTypeValidation("application/json"))
	router.Use(middleware.RateLimiter(logger, cfg.RateLimit, cfg.RateLimitBurst))

	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, slowRequestThreshold))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler(logger))
}

// NewRouter builds a gin engine with middleware and routes
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	SetupMiddleware(router, cfg)
	SetupRoutes(router, cfg)
	return router
}

// NewLambdaRouter registers the API routes on a Lambda router
func NewLambdaRouter(cfg *RouterConfig) *lambda.Router {
	errs := cfg.renderer()
	blogHandler := NewBlogHandler(cfg.BlogService, errs)
	menuHandler := NewMenuHandler(cfg.MenuService, errs)
	authHandler := NewAuthHandler(cfg.AuthService, errs)

	router := lambda.NewRouter(middleware.CORSHeaders(), cfg.Logger)
	router.Handle(http.MethodGet, "/api/blogs", blogHandler.HandleList)
	router.Handle(http.MethodPost, "/api/blogs", blogHandler.HandleCreate)
	router.Handle(http.MethodGet, "/api/blogs/{postNo}", blogHandler.HandleGet)
	router.Handle(http.MethodPut, "/api/blogs/{postNo}", blogHandler.HandleUpdate)
	router.Handle(http.MethodGet, "/api/menus", menuHandler.HandleGet)
	router.Handle(http.MethodPost, "/api/login", authHandler.HandleLogin)
	return router
}
