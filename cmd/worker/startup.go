package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/pkg/container"
)

// startServices chạy health check rồi mở endpoint /health cho orchestrator
func startServices(c *container.Container, cfg *Config) error {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Bloggerum Worker Starting...")
	log.Info().Msg("============================================")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for name, status := range c.HealthCheck(ctx) {
		if status != "UP" {
			log.Error().Str("check", name).Str("status", status).Msg("❌ Health check failed")
			return fmt.Errorf("%s: %s", name, status)
		}
		log.Info().Str("check", name).Msg("✓ OK")
	}

	go startHealthCheckServer(c, cfg.HealthAddr)
	return nil
}

func startHealthCheckServer(c *container.Container, addr string) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "bloggerum-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		services := c.HealthCheck(checkCtx)
		for _, s := range services {
			if s != "UP" {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "services": services})
				return
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
