package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Wajihx/News-Article-Classifier/internal/adapter/http/handler"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/http/middleware"
	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

// Deps holds what the router wires into handlers. DB and Redis are nil when disabled.
type Deps struct {
	Classify       usecase.ClassifyUsecase
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	MaxUploadBytes int64
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.MaxMultipartMemory = handler.DefaultMaxUploadBytes

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Classify)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Browser UI
	uiHandler := handler.NewUIHandler(deps.Classify, deps.MaxUploadBytes, logger)
	router.GET("/", uiHandler.Index)
	router.POST("/classify", uiHandler.Classify)

	classifyHandler := handler.NewClassifyHandler(deps.Classify, deps.MaxUploadBytes)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/labels", classifyHandler.Labels)
		v1.POST("/classify", classifyHandler.Classify)
		v1.POST("/classify/upload", classifyHandler.ClassifyUpload)
		v1.POST("/extract", classifyHandler.Extract)

		samples := v1.Group("/samples")
		{
			samples.GET("", classifyHandler.ListSamples)
			samples.GET("/:name", classifyHandler.GetSample)
			samples.POST("/:name/classify", classifyHandler.ClassifySample)
		}

		v1.POST("/feeds/classify", classifyHandler.ClassifyFeed)

		classifications := v1.Group("/classifications")
		{
			classifications.GET("", classifyHandler.ListClassifications)
			classifications.GET("/stats", classifyHandler.ClassificationStats)
			classifications.GET("/:id", classifyHandler.GetClassification)
		}
	}

	return router
}
