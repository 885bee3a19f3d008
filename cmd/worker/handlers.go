package main

import (
	"github.com/hibiken/asynq"

	imagejob "bloggerum-backend/internal/domains/image/job"
	"bloggerum-backend/internal/infrastructure/email"
	emailjob "bloggerum-backend/internal/infrastructure/email/job"
	"bloggerum-backend/internal/shared"
	"bloggerum-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email
	resetPassword *emailjob.ResetPasswordEmailHandler

	// Image lifecycle
	deleteImage  *imagejob.DeleteImageHandler
	sweepOrphans *imagejob.SweepOrphansHandler
}

func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.Email)

	return &HandlerRegistry{
		resetPassword: emailjob.NewResetPasswordEmailHandler(emailSvc),
		deleteImage:   imagejob.NewDeleteImageHandler(c.ImageService),
		sweepOrphans:  imagejob.NewSweepOrphansHandler(c.Storage, c.PostRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendResetEmail, h.resetPassword.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteImage, h.deleteImage.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphans.ProcessTask)
}
