package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/middleware"
)

const prefix = "http://minio:9000/bloggerum/"

type stubService struct {
	uploads []image.UploadInput
	deleted []string
}

func (s *stubService) Upload(_ context.Context, in image.UploadInput) (string, error) {
	s.uploads = append(s.uploads, in)
	return prefix + in.Prefix + "abc.webp", nil
}

func (s *stubService) Delete(_ context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	return nil
}

func (s *stubService) DeleteOrQueue(context.Context, string, string) {}

func (s *stubService) KeyFromRef(ref string) string { return storage.KeyFromRef(prefix, ref) }

func newRouter(svc image.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewImageHandler(svc)
	r := gin.New()
	r.UseRawPath = true
	r.Use(middleware.ErrorHandler(true))
	r.POST("/api/images", h.UploadImage)
	r.DELETE("/api/images/*imageUrlOrName", h.DeleteImage)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("image", "a.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	body, ct := multipartBody(t, map[string]string{"resize": "false"}, []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"imageUrl":"`+prefix+`editor/abc.webp"}`, w.Body.String())
	require.Len(t, svc.uploads, 1)
	assert.False(t, svc.uploads[0].Resize)
	assert.Equal(t, []byte("img"), svc.uploads[0].Data)
}

func TestUploadImage_MissingFile(t *testing.T) {
	r := newRouter(&stubService{})

	body, ct := multipartBody(t, map[string]string{"resize": "true"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image is required")
}

func TestDeleteImage(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantKey    string
	}{
		{"bare name", "/api/images/abc.webp", http.StatusOK, "editor/abc.webp"},
		{"editor key", "/api/images/editor/abc.webp", http.StatusOK, "editor/abc.webp"},
		{"escaped url", "/api/images/" + url.PathEscape(prefix+"editor/abc.webp"), http.StatusOK, "editor/abc.webp"},
		{"thumbnail is forbidden", "/api/images/posts/abc.webp", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantKey != "" {
				assert.Equal(t, []string{tt.wantKey}, svc.deleted)
				assert.JSONEq(t, `{"message":"Image successfully removed"}`, w.Body.String())
			} else {
				assert.Empty(t, svc.deleted)
			}
		})
	}
}
