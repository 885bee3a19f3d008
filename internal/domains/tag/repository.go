package tag

import "context"

// Repository truy cập bảng tags
type Repository interface {
	// EnsureExists insert tag nếu chưa có (INSERT ... ON CONFLICT DO NOTHING).
	// name phải đã normalize.
	EnsureExists(ctx context.Context, name string) error

	// List trả về toàn bộ tên tag, sort theo name
	List(ctx context.Context) ([]string, error)
}
