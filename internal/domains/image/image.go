package image

import (
	"context"

	"bloggerum-backend/internal/shared/apperror"
)

var (
	ErrImageRequired  = apperror.New(apperror.KindValidation, "Image is required")
	ErrInvalidRef     = apperror.New(apperror.KindValidation, "Invalid image reference")
	ErrImageForbidden = apperror.New(apperror.KindAuthorization, "User not authorized")
)

// UploadInput: Prefix là thư mục trong bucket (storage.PrefixPosts, PrefixAvatars, PrefixEditor)
type UploadInput struct {
	Data   []byte
	Resize bool
	Prefix string
}

// Service là image lifecycle helper dùng chung cho post, user và editor
type Service interface {
	// Upload validate + resize + WebP rồi đẩy lên object storage, trả về public URL
	Upload(ctx context.Context, in UploadInput) (string, error)

	// Delete xoá ngay, nhận URL hoặc key
	Delete(ctx context.Context, ref string) error

	// DeleteOrQueue thử xoá ngay, thất bại thì đẩy task image:delete để retry.
	// Không trả lỗi: ảnh mồ côi còn được orphan sweep dọn.
	DeleteOrQueue(ctx context.Context, ref, reason string)

	// KeyFromRef chuyển URL public thành object key
	KeyFromRef(ref string) string
}
