package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloggerum-backend/internal/infrastructure/email"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared"
)

func TestNewDeleteImageTask(t *testing.T) {
	task, err := NewDeleteImageTask("http://minio/bloggerum/posts/a.webp", "post_deleted", "req-1")
	require.NoError(t, err)
	assert.Equal(t, shared.TypeDeleteImage, task.Type())

	var payload shared.DeleteImagePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "http://minio/bloggerum/posts/a.webp", payload.Ref)
	assert.Equal(t, "post_deleted", payload.Reason)
	assert.Equal(t, "req-1", payload.RequestID)
	assert.False(t, payload.QueuedAt.IsZero())
}

func TestNewResetEmailTask(t *testing.T) {
	task, err := NewResetEmailTask(email.ResetPasswordData{Email: "a@x.com", ResetLink: "l"})
	require.NoError(t, err)
	assert.Equal(t, shared.TypeSendResetEmail, task.Type())

	var payload email.ResetPasswordData
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "a@x.com", payload.Email)
}

func TestNewSweepOrphanImagesTask(t *testing.T) {
	task, err := NewSweepOrphanImagesTask(24)
	require.NoError(t, err)

	var payload shared.SweepOrphanImagesPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, storage.PrefixPosts, payload.Prefix)
	assert.Equal(t, 24, payload.MinAgeHrs)
}
