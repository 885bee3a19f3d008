package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/shared/utils"
	"bloggerum-backend/pkg/container"
	"bloggerum-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	handlers := initializeHandlers(c, cfg)
	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	if err := startServices(c, cfg); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("[Shutdown] ✓ Stopped")
}
