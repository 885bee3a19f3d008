package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/utils"
)

// ObjectStore là phần của storage.MinIOStorage mà service cần
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromRef(ref string) string
}

type Processor interface {
	Process(data []byte, resize bool) ([]byte, error)
}

// DeleteQueue: queue.Client
type DeleteQueue interface {
	EnqueueDeleteImage(ctx context.Context, ref, reason, requestID string) error
}

type imageService struct {
	store     ObjectStore
	processor Processor
	queue     DeleteQueue
}

func NewImageService(store ObjectStore, processor Processor, queue DeleteQueue) image.Service {
	return &imageService{store: store, processor: processor, queue: queue}
}

func (s *imageService) Upload(ctx context.Context, in image.UploadInput) (string, error) {
	if len(in.Data) == 0 {
		return "", image.ErrImageRequired
	}

	webp, err := s.processor.Process(in.Data, in.Resize)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindValidation {
			return "", err
		}
		return "", apperror.Wrap(apperror.KindInternal, err, "Failed to process image")
	}

	name, err := utils.RandomHex(32)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err, "Failed to name image")
	}
	prefix := in.Prefix
	if prefix == "" {
		prefix = storage.PrefixEditor
	}

	url, err := s.store.Upload(ctx, prefix+name+".webp", webp, storage.WebPContentType)
	if err != nil {
		return "", apperror.Upstream(err, "Failed to upload image")
	}
	return url, nil
}

func (s *imageService) KeyFromRef(ref string) string {
	return s.store.KeyFromRef(ref)
}

func (s *imageService) Delete(ctx context.Context, ref string) error {
	key := s.store.KeyFromRef(ref)
	if key == "" || strings.Contains(key, "..") {
		return image.ErrInvalidRef
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return apperror.Upstream(err, "Failed to delete image")
	}
	return nil
}

func (s *imageService) DeleteOrQueue(ctx context.Context, ref, reason string) {
	if strings.TrimSpace(ref) == "" {
		return
	}

	err := s.Delete(ctx, ref)
	if err == nil {
		return
	}
	if apperror.KindOf(err) == apperror.KindValidation {
		log.Warn().Str("ref", ref).Msg("[IMAGE] Skipping delete of invalid reference")
		return
	}

	requestID := utils.RequestIDFromContext(ctx)
	log.Warn().Err(err).
		Str("ref", ref).
		Str("reason", reason).
		Str("request_id", requestID).
		Msg("[IMAGE] Inline delete failed, queueing retry")

	// Request có thể đã bị cancel, enqueue với context riêng
	if qErr := s.queue.EnqueueDeleteImage(context.WithoutCancel(ctx), ref, reason, requestID); qErr != nil {
		log.Error().Err(qErr).Str("ref", ref).Msg("[IMAGE] Failed to queue delete, left for orphan sweep")
	}
}
