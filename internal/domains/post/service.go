package post

import "context"

type Service interface {
	ListPosts(ctx context.Context, q PostQuery) (*PostList, error)
	GetPost(ctx context.Context, id string) (*PostView, error)

	CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*PostView, error)
	UpdatePost(ctx context.Context, userID, postID string, req UpdatePostRequest) (*PostView, error)
	DeletePost(ctx context.Context, userID, postID string) error
}
