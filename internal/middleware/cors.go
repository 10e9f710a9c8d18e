package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ontwatch/internal/config"
)

func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	if len(cfg.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowedHeaders
	}
	corsConfig.ExposeHeaders = cfg.ExposedHeaders
	corsConfig.AllowCredentials = cfg.AllowCredentials
	if cfg.MaxAge > 0 {
		corsConfig.MaxAge = time.Duration(cfg.MaxAge) * time.Second
	}

	return cors.New(corsConfig)
}
