package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/apperror"
	"bloggerum-backend/internal/shared/response"
)

type ImageHandler struct {
	service image.Service
}

func NewImageHandler(service image.Service) *ImageHandler {
	return &ImageHandler{service: service}
}

// UploadImage POST /api/images (multipart: image, resize)
// Ảnh chèn trong rich-text editor
func (h *ImageHandler) UploadImage(c *gin.Context) {
	// STEP 1: đọc file
	data, err := ReadFormFile(c, "image")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if data == nil {
		_ = c.Error(image.ErrImageRequired)
		return
	}

	// STEP 2: resize mặc định true
	resize := true
	if raw := c.PostForm("resize"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(apperror.Validation("Invalid resize flag", err))
			return
		}
		resize = parsed
	}

	// STEP 3: upload
	url, err := h.service.Upload(c.Request.Context(), image.UploadInput{
		Data:   data,
		Resize: resize,
		Prefix: storage.PrefixEditor,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{"imageUrl": url})
}

// DeleteImage DELETE /api/images/*imageUrlOrName
// Chỉ xoá được ảnh editor, thumbnail và avatar đi theo vòng đời của post/user
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("imageUrlOrName"), "/")
	if ref == "" {
		_ = c.Error(image.ErrInvalidRef)
		return
	}

	key := h.service.KeyFromRef(ref)
	if !strings.Contains(key, "/") {
		// tên trần (chỉ có id) được hiểu là ảnh editor
		key = storage.PrefixEditor + key
	}
	if !strings.HasPrefix(key, storage.PrefixEditor) {
		_ = c.Error(image.ErrImageForbidden)
		return
	}

	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Image successfully removed")
}

// ReadFormFile đọc file multipart, field không có thì trả về (nil, nil)
func ReadFormFile(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, apperror.Validation("Invalid multipart form", err)
	}
	return readFileHeader(fh)
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Validation("Cannot read uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.Validation("Cannot read uploaded file", err)
	}
	return data, nil
}
