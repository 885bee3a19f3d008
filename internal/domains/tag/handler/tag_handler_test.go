package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bloggerum-backend/internal/domains/tag"
	"bloggerum-backend/internal/shared/middleware"
)

type stubService struct {
	names []string
}

func (s *stubService) List(context.Context) ([]string, error) { return s.names, nil }

func (s *stubService) Create(_ context.Context, req tag.CreateTagRequest) (*tag.Tag, error) {
	name := tag.NormalizeOne(req.Name)
	if name == "" {
		return nil, tag.ErrTagNameRequired
	}
	return &tag.Tag{Name: name}, nil
}

func (s *stubService) EnsureAll(_ context.Context, names []string) ([]string, error) {
	return tag.Normalize(names), nil
}

func newRouter(svc tag.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTagHandler(svc)
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))
	r.GET("/api/tags", h.ListTags)
	r.POST("/api/tags", h.CreateTag)
	return r
}

func TestListTags(t *testing.T) {
	r := newRouter(&stubService{names: []string{"go", "rust"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tags", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["go","rust"]`, w.Body.String())
}

func TestCreateTag(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":"Go"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"go"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":" "}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Tag name is required","stack":null}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
