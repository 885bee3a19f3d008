package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	imagehandler "bloggerum-backend/internal/domains/image/handler"
	"bloggerum-backend/internal/domains/post"
	"bloggerum-backend/internal/shared/middleware"
	"bloggerum-backend/internal/shared/pagination"
	"bloggerum-backend/internal/shared/response"
)

type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts GET /api/posts?userId=&tag=&q=&page=&limit=
func (h *PostHandler) ListPosts(c *gin.Context) {
	list, err := h.service.ListPosts(c.Request.Context(), post.PostQuery{
		UserID: c.Query("userId"),
		Tag:    c.Query("tag"),
		Search: c.Query("q"),
		Page:   pagination.Parse(c.Query("page"), c.Query("limit")),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// GetPost GET /api/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	v, err := h.service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, v)
}

// CreatePost POST /api/posts (private, multipart)
func (h *PostHandler) CreatePost(c *gin.Context) {
	// STEP 1: AUTH
	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// STEP 2: PARSE FORM
	thumbnail, err := imagehandler.ReadFormFile(c, "thumbnail")
	if err != nil {
		_ = c.Error(err)
		return
	}
	tags, _, err := formTags(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// STEP 3: CALL SERVICE
	v, err := h.service.CreatePost(c.Request.Context(), userID, post.CreatePostRequest{
		Title:     c.PostForm("title"),
		Body:      c.PostForm("body"),
		Tags:      tags,
		Thumbnail: thumbnail,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, v)
}

// UpdatePost PUT /api/posts/:id (private, owner, multipart)
// Field nào không gửi thì giữ nguyên
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req post.UpdatePostRequest
	if title, ok := c.GetPostForm("title"); ok {
		req.Title = &title
	}
	if body, ok := c.GetPostForm("body"); ok {
		req.Body = &body
	}
	tags, present, err := formTags(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if present {
		req.Tags = &tags
	}
	if raw, ok := c.GetPostForm("version"); ok && strings.TrimSpace(raw) != "" {
		version, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			_ = c.Error(post.ErrInvalidVersion)
			return
		}
		req.Version = &version
	}
	if req.Thumbnail, err = imagehandler.ReadFormFile(c, "thumbnail"); err != nil {
		_ = c.Error(err)
		return
	}

	v, err := h.service.UpdatePost(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, v)
}

// DeletePost DELETE /api/posts/:id (private, owner)
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := middleware.UserIDFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Post successfully removed")
}

// formTags đọc tags từ form: JSON array trong một field, hoặc field lặp lại (tags / tags[]).
// present=false khi client không gửi field nào.
func formTags(c *gin.Context) (tags []string, present bool, err error) {
	values, ok := c.GetPostFormArray("tags")
	if !ok {
		values, ok = c.GetPostFormArray("tags[]")
	}
	if !ok {
		return nil, false, nil
	}

	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if strings.HasPrefix(raw, "[") {
			if err := json.Unmarshal([]byte(raw), &tags); err != nil {
				return nil, true, post.ErrInvalidTags
			}
			return tags, true, nil
		}
		if raw == "" {
			return []string{}, true, nil
		}
	}
	return values, true, nil
}
