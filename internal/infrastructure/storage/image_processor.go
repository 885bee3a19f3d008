package storage

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // decoder cho input webp

	"bloggerum-backend/internal/config"
	"bloggerum-backend/internal/shared/apperror"
)

const WebPContentType = "image/webp"

var (
	ErrEmptyImage       = apperror.New(apperror.KindValidation, "No image uploaded")
	ErrImageTooLarge    = apperror.New(apperror.KindValidation, "Image is too large")
	ErrUnsupportedImage = apperror.New(apperror.KindValidation, "Unsupported image type")
)

// ImageProcessor validate + resize + transcode sang WebP
type ImageProcessor struct {
	MaxSize int64 // bytes
	Width   int
	Height  int
	Quality int
}

func NewImageProcessor(cfg config.ImageConfig) *ImageProcessor {
	return &ImageProcessor{
		MaxSize: int64(cfg.MaxUploadMB) * 1024 * 1024,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Quality: cfg.Quality,
	}
}

// ValidateImage check size + magic bytes, chỉ nhận jpeg/png/gif/webp
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}
	if p.MaxSize > 0 && int64(len(data)) > p.MaxSize {
		return ErrImageTooLarge
	}
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return ErrUnsupportedImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return ErrUnsupportedImage
	}
	return nil
}

// Process decode -> resize -> encode WebP.
// resize=true: crop về đúng Width x Height (cover), không phóng to ảnh nhỏ.
// resize=false: chỉ giới hạn chiều rộng, giữ tỉ lệ.
func (p *ImageProcessor) Process(data []byte, resize bool) ([]byte, error) {
	if err := p.ValidateImage(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	out := p.transform(img, resize)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, out, &webp.Options{Quality: float32(p.Quality)}); err != nil {
		return nil, fmt.Errorf("cannot encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *ImageProcessor) transform(img image.Image, resize bool) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if resize && w >= p.Width && h >= p.Height {
		return imaging.Fill(img, p.Width, p.Height, imaging.Center, imaging.Lanczos)
	}
	if w > p.Width {
		return imaging.Resize(img, p.Width, 0, imaging.Lanczos)
	}
	return img
}
