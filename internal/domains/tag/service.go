package tag

import "context"

type Service interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req CreateTagRequest) (*Tag, error)

	// EnsureAll normalize rồi ensure từng tag lần lượt, trả về danh sách đã normalize
	EnsureAll(ctx context.Context, names []string) ([]string, error)
}
