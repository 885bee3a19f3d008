package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bloggerum-backend/internal/infrastructure/email"
	"bloggerum-backend/internal/shared"
)

// Client bọc asynq.Client, services chỉ thấy các method Enqueue* theo domain
type Client struct {
	asynq            *asynq.Client
	deleteImageRetry int
}

func NewClient(client *asynq.Client, deleteImageRetry int) *Client {
	if deleteImageRetry <= 0 {
		deleteImageRetry = 10
	}
	return &Client{asynq: client, deleteImageRetry: deleteImageRetry}
}

func (c *Client) Close() error {
	return c.asynq.Close()
}

// NewResetEmailTask tạo task gửi email reset password
func NewResetEmailTask(data email.ResetPasswordData) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal reset email payload: %w", err)
	}
	return asynq.NewTask(shared.TypeSendResetEmail, payload), nil
}

// NewDeleteImageTask tạo task xoá ảnh trên object storage (retry với backoff mặc định của asynq)
func NewDeleteImageTask(ref, reason, requestID string) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.DeleteImagePayload{
		Ref:       ref,
		Reason:    reason,
		QueuedAt:  time.Now().UTC(),
		RequestID: requestID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal delete image payload: %w", err)
	}
	return asynq.NewTask(shared.TypeDeleteImage, payload), nil
}

func (c *Client) EnqueueResetEmail(ctx context.Context, data email.ResetPasswordData) error {
	task, err := NewResetEmailTask(data)
	if err != nil {
		return err
	}
	_, err = c.asynq.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueCritical),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue reset email: %w", err)
	}
	return nil
}

func (c *Client) EnqueueDeleteImage(ctx context.Context, ref, reason, requestID string) error {
	task, err := NewDeleteImageTask(ref, reason, requestID)
	if err != nil {
		return err
	}
	_, err = c.asynq.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(c.deleteImageRetry),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue delete image: %w", err)
	}
	return nil
}
