package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/shared"
	"bloggerum-backend/internal/shared/apperror"
)

// DeleteImageHandler retry xoá ảnh khi delete inline thất bại
type DeleteImageHandler struct {
	images image.Service
}

func NewDeleteImageHandler(images image.Service) *DeleteImageHandler {
	return &DeleteImageHandler{images: images}
}

func (h *DeleteImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteImage payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("ref", payload.Ref).
		Str("reason", payload.Reason).
		Str("request_id", payload.RequestID).
		Msg("Deleting image")

	if err := h.images.Delete(ctx, payload.Ref); err != nil {
		if apperror.KindOf(err) == apperror.KindValidation {
			return fmt.Errorf("delete image %q: %v: %w", payload.Ref, err, asynq.SkipRetry)
		}
		log.Error().
			Err(err).
			Str("ref", payload.Ref).
			Msg("Failed to delete image, will retry")
		return fmt.Errorf("delete image: %w", err)
	}

	log.Info().
		Str("ref", payload.Ref).
		Msg("Image deleted successfully")
	return nil
}
