package post

import (
	"context"

	"github.com/google/uuid"
)

// ListCriteria là input đã chuẩn hoá cho repository.
// Terms khác rỗng => search strategy, ngược lại filter strategy.
type ListCriteria struct {
	UserID *uuid.UUID
	Tag    string
	Terms  []string
	Limit  int
	Offset int
}

type Repository interface {
	// List trả về trang kết quả và tổng số bản ghi khớp điều kiện
	List(ctx context.Context, criteria ListCriteria) ([]PostView, int, error)

	// FindViewByID: post đã join user. Returns: ErrPostNotFound
	FindViewByID(ctx context.Context, id uuid.UUID) (*PostView, error)

	// FindByID: entity thô để mutate. Returns: ErrPostNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	Create(ctx context.Context, p *Post) error

	// Update là compare-and-swap trên version.
	// Returns: ErrPostNotFound, ErrVersionConflict
	Update(ctx context.Context, p *Post, expectedVersion int) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ReferencedThumbnails trả về các URL trong urls còn được post hoặc avatar tham chiếu
	ReferencedThumbnails(ctx context.Context, urls []string) (map[string]struct{}, error)
}
