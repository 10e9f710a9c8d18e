package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ontwatch/internal/collector"
	"ontwatch/internal/config"
	"ontwatch/internal/delivery/http/handler"
	"ontwatch/internal/logger"
	"ontwatch/internal/middleware"
	"ontwatch/internal/usecase/analytics"
	"ontwatch/internal/usecase/notification"
	"ontwatch/internal/usecase/occupancy"
	"ontwatch/internal/usecase/ont"
	"ontwatch/internal/usecase/outage"
)

// Services bundles everything the HTTP layer serves. The same service
// instances are shared with the poller, so reads through the API see
// the state the poller last wrote.
type Services struct {
	ONTs          *ont.Service
	Notifications *notification.Service
	Outages       *outage.Service
	Occupancy     *occupancy.Service
	Analytics     *analytics.Service
	Collector     collector.Collector
}

func SetupRoutes(cfg *config.Config, svc *Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	ontHandler := handler.NewONTHandler(svc.ONTs)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	outageHandler := handler.NewOutageHandler(svc.Outages)
	occupancyHandler := handler.NewOccupancyHandler(svc.Occupancy)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)
	hotspotHandler := handler.NewHotspotHandler(svc.Collector)

	api := router.Group("/api")
	{
		ontHandler.RegisterRoutes(api)
		notificationHandler.RegisterRoutes(api)
		outageHandler.RegisterRoutes(api)
		occupancyHandler.RegisterRoutes(api)
		analyticsHandler.RegisterRoutes(api)
		hotspotHandler.RegisterRoutes(api)
	}

	logger.Info("All routes initialized")
	return router
}
