package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared"
)

const sweepBatchSize = 500

// ObjectLister là phần của storage.MinIOStorage dùng cho sweep
type ObjectLister interface {
	ListOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]storage.ObjectInfo, error)
	RemoveObjects(ctx context.Context, keys []string) error
	URL(key string) string
}

// ThumbnailIndex trả về tập URL đang được post tham chiếu
type ThumbnailIndex interface {
	ReferencedThumbnails(ctx context.Context, urls []string) (map[string]struct{}, error)
}

// SweepOrphansHandler xoá thumbnail cũ không còn post nào dùng
type SweepOrphansHandler struct {
	objects ObjectLister
	index   ThumbnailIndex
	now     func() time.Time
}

func NewSweepOrphansHandler(objects ObjectLister, index ThumbnailIndex) *SweepOrphansHandler {
	return &SweepOrphansHandler{objects: objects, index: index, now: time.Now}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SweepOrphanImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Prefix == "" {
		payload.Prefix = storage.PrefixPosts
	}
	if payload.MinAgeHrs <= 0 {
		payload.MinAgeHrs = 24
	}

	cutoff := h.now().Add(-time.Duration(payload.MinAgeHrs) * time.Hour)
	objects, err := h.objects.ListOlderThan(ctx, payload.Prefix, cutoff)
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	removed := 0
	for start := 0; start < len(objects); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(objects))
		batch := objects[start:end]

		urls := make([]string, len(batch))
		for i, obj := range batch {
			urls[i] = h.objects.URL(obj.Key)
		}

		referenced, err := h.index.ReferencedThumbnails(ctx, urls)
		if err != nil {
			return fmt.Errorf("lookup thumbnails: %w", err)
		}

		var orphans []string
		for i, obj := range batch {
			if _, ok := referenced[urls[i]]; !ok {
				orphans = append(orphans, obj.Key)
			}
		}
		if len(orphans) == 0 {
			continue
		}
		if err := h.objects.RemoveObjects(ctx, orphans); err != nil {
			return fmt.Errorf("remove orphans: %w", err)
		}
		removed += len(orphans)
	}

	log.Info().
		Str("prefix", payload.Prefix).
		Int("scanned", len(objects)).
		Int("removed", removed).
		Msg("Orphan image sweep finished")
	return nil
}
