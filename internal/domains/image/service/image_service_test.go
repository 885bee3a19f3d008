package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/utils"
)

const urlPrefix = "http://minio:9000/bloggerum/"

type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

func (f *fakeStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	return urlPrefix + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) KeyFromRef(ref string) string { return storage.KeyFromRef(urlPrefix, ref) }

type fakeProcessor struct{ err error }

func (p fakeProcessor) Process(data []byte, resize bool) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if resize {
		return append([]byte("webp-resized:"), data...), nil
	}
	return append([]byte("webp:"), data...), nil
}

type queued struct{ ref, reason, requestID string }

type fakeQueue struct {
	tasks []queued
	err   error
}

func (q *fakeQueue) EnqueueDeleteImage(_ context.Context, ref, reason, requestID string) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, queued{ref, reason, requestID})
	return nil
}

func TestUpload(t *testing.T) {
	store := newFakeStore()
	svc := NewImageService(store, fakeProcessor{}, &fakeQueue{})

	url, err := svc.Upload(context.Background(), image.UploadInput{Data: []byte("png"), Resize: true, Prefix: storage.PrefixPosts})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, urlPrefix+"posts/"))
	assert.True(t, strings.HasSuffix(url, ".webp"))

	key := svc.KeyFromRef(url)
	assert.Equal(t, []byte("webp-resized:png"), store.objects[key])
}

func TestUpload_DefaultsToEditorPrefix(t *testing.T) {
	svc := NewImageService(newFakeStore(), fakeProcessor{}, &fakeQueue{})
	url, err := svc.Upload(context.Background(), image.UploadInput{Data: []byte("png")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, urlPrefix+storage.PrefixEditor))
}

func TestUpload_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewImageService(newFakeStore(), fakeProcessor{}, &fakeQueue{}).Upload(ctx, image.UploadInput{})
	assert.ErrorIs(t, err, image.ErrImageRequired)

	_, err = NewImageService(newFakeStore(), fakeProcessor{err: storage.ErrUnsupportedImage}, &fakeQueue{}).
		Upload(ctx, image.UploadInput{Data: []byte("x")})
	assert.ErrorIs(t, err, storage.ErrUnsupportedImage)

	store := newFakeStore()
	store.uploadErr = errors.New("minio down")
	_, err = NewImageService(store, fakeProcessor{}, &fakeQueue{}).Upload(ctx, image.UploadInput{Data: []byte("x")})
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewImageService(store, fakeProcessor{}, &fakeQueue{})

	require.NoError(t, svc.Delete(context.Background(), urlPrefix+"posts/a.webp"))
	require.NoError(t, svc.Delete(context.Background(), "editor/b.webp"))
	assert.Equal(t, []string{"posts/a.webp", "editor/b.webp"}, store.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "../etc/passwd"), image.ErrInvalidRef)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), image.ErrInvalidRef)
}

func TestDeleteOrQueue_InlineSuccessDoesNotQueue(t *testing.T) {
	store := newFakeStore()
	q := &fakeQueue{}
	NewImageService(store, fakeProcessor{}, q).DeleteOrQueue(context.Background(), urlPrefix+"posts/a.webp", "post_deleted")

	assert.Equal(t, []string{"posts/a.webp"}, store.deleted)
	assert.Empty(t, q.tasks)
}

func TestDeleteOrQueue_FailureQueuesRetry(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("timeout")
	q := &fakeQueue{}
	ctx := utils.WithRequestID(context.Background(), "req-7")

	NewImageService(store, fakeProcessor{}, q).DeleteOrQueue(ctx, urlPrefix+"posts/a.webp", "post_deleted")

	require.Len(t, q.tasks, 1)
	assert.Equal(t, queued{urlPrefix + "posts/a.webp", "post_deleted", "req-7"}, q.tasks[0])
}

func TestDeleteOrQueue_QueueFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("timeout")
	q := &fakeQueue{err: errors.New("redis down")}

	assert.NotPanics(t, func() {
		NewImageService(store, fakeProcessor{}, q).DeleteOrQueue(context.Background(), "posts/a.webp", "x")
	})
	NewImageService(store, fakeProcessor{}, q).DeleteOrQueue(context.Background(), "", "x")
}
