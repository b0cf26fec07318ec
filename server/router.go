package server

import (
	"time"

	"tiktok-planner/infrastructure/metrics"
	httpHandler "tiktok-planner/interfaces/http"
	"tiktok-planner/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowOrigins []string
	// RateLimiter throttles the search route. Nil disables throttling.
	RateLimiter *middleware.RateLimiter
}

func InitiateRouter(
	searchHandler httpHandler.ISearchHandler,
	healthHandler httpHandler.IHealthHandler,
	config RouterConfig,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("api")
	tiktok := api.Group("/tiktok")
	if config.RateLimiter != nil {
		tiktok.Use(config.RateLimiter.Handler())
	}
	{
		tiktok.GET("/search", searchHandler.Search)
	}

	return router
}
