package main

import (
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/infrastructure/queue"
	"bloggerum-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(container.RedisClientOpt(cfg.Redis), cfg.Job)

	if err := scheduler.RegisterCleanupJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		log.Info().Str("cron", cfg.Job.OrphanSweepCron).Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
