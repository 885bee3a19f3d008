package main

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/config"
	"bloggerum-backend/internal/shared/utils"
)

// Config là phần cấu hình riêng của worker, phần còn lại lấy từ container
type Config struct {
	Redis       config.RedisConfig
	Email       config.EmailConfig
	Job         config.JobConfig
	Concurrency int
	HealthAddr  string
}

func loadConfig(app *config.Config) *Config {
	concurrency, err := strconv.Atoi(utils.GetEnvVariable("WORKER_CONCURRENCY", "10"))
	if err != nil || concurrency < 1 {
		concurrency = 10
	}

	cfg := &Config{
		Redis:       app.Redis,
		Email:       app.Email,
		Job:         app.Job,
		Concurrency: concurrency,
		HealthAddr:  utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999"),
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Str("smtp", cfg.Email.SMTPHost+":"+cfg.Email.SMTPPort).
		Int("concurrency", cfg.Concurrency).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
