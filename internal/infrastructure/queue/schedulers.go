package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bloggerum-backend/internal/config"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared"
	"bloggerum-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerSweepOrphanImagesJob()
}

// ================================================
// JOB: Sweep Orphan Images (mặc định daily lúc 3:30 AM)
// ================================================
// Thumbnail không còn post nào tham chiếu (upload lỗi giữa chừng, delete inline thất bại
// mà task retry cũng hết lượt) sẽ bị xoá khi đủ MinAgeHrs tuổi.
func (s *Scheduler) registerSweepOrphanImagesJob() error {
	task, err := NewSweepOrphanImagesTask(s.jobConfig.OrphanMinAgeHours)
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.jobConfig.OrphanSweepCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanImages job", err)
		return err
	}

	logger.Info("✓ Registered SweepOrphanImages", map[string]interface{}{
		"cron": s.jobConfig.OrphanSweepCron,
	})
	return nil
}

// NewSweepOrphanImagesTask: chỉ quét thumbnail của post
func NewSweepOrphanImagesTask(minAgeHours int) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.SweepOrphanImagesPayload{
		Prefix:    storage.PrefixPosts,
		MinAgeHrs: minAgeHours,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(shared.TypeSweepOrphanImages, payload), nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
