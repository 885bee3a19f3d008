package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"bloggerum-backend/internal/config"
)

// Object prefixes trong bucket
const (
	PrefixPosts   = "posts/"
	PrefixAvatars = "avatars/"
	PrefixEditor  = "editor/"
)

// ObjectInfo là bản rút gọn của minio.ObjectInfo cho orphan sweep
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// MinIOStorage handles file uploads to MinIO
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	urlPrefix string // <public base>/<bucket>/
}

// NewMinIOStorage khởi tạo MinIO client, tạo bucket + policy public-read nếu chưa có
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL, // false cho local, true cho production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		// Ảnh được trả thẳng URL cho client nên bucket phải đọc được public
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("failed to set bucket policy: %w", err)
		}
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		urlPrefix: PublicURLPrefix(cfg),
	}, nil
}

// PublicURLPrefix: MINIO_PUBLIC_URL nếu có, không thì build từ endpoint
func PublicURLPrefix(cfg config.MinIOConfig) string {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/", base, cfg.Bucket)
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// Upload uploads a file to MinIO, trả về public URL
// key: đường dẫn file trong bucket (vd: posts/<uuid>.webp)
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s", key)
	}
	return s.URL(key), nil
}

// URL build public URL cho key
func (s *MinIOStorage) URL(key string) string {
	return s.urlPrefix + key
}

// KeyFromRef nhận URL hoặc key, trả về key trong bucket
func (s *MinIOStorage) KeyFromRef(ref string) string {
	return KeyFromRef(s.urlPrefix, ref)
}

// KeyFromRef tách key từ URL public. Ref không phải URL thì coi là key.
func KeyFromRef(urlPrefix, ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, urlPrefix) {
		return strings.TrimPrefix(ref, urlPrefix)
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimPrefix(ref, "/")
	}

	// URL từ endpoint khác (vd: đổi MINIO_PUBLIC_URL): bỏ segment bucket
	path := strings.TrimPrefix(u.Path, "/")
	if _, rest, ok := strings.Cut(path, "/"); ok {
		return rest
	}
	return path
}

// Delete xóa một file khỏi MinIO. Xoá key không tồn tại không lỗi.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}
	return nil
}

// Exists dùng StatObject, NoSuchKey => false
func (s *MinIOStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %s", key)
}

// ListOlderThan liệt kê objects dưới prefix có LastModified trước cutoff
func (s *MinIOStorage) ListOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]ObjectInfo, error) {
	objectsCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var out []ObjectInfo
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		if object.LastModified.Before(cutoff) {
			out = append(out, ObjectInfo{Key: object.Key, LastModified: object.LastModified})
		}
	}
	return out, nil
}

// RemoveObjects xóa nhiều objects cùng lúc (orphan sweep)
func (s *MinIOStorage) RemoveObjects(ctx context.Context, keys []string) error {
	objectsCh := make(chan minio.ObjectInfo, len(keys))

	go func() {
		defer close(objectsCh)
		for _, key := range keys {
			objectsCh <- minio.ObjectInfo{Key: key}
		}
	}()

	errorCh := s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{})
	for rmErr := range errorCh {
		if rmErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rmErr.ObjectName, rmErr.Err)
		}
	}
	return nil
}

// HealthCheck cho /health
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}
