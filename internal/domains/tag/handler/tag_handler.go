package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloggerum-backend/internal/domains/tag"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/response"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// ListTags GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	names, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, names)
}

// CreateTag POST /api/tags (private)
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req tag.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validation("Invalid request body", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"name": created.Name})
}
