package post

import (
	"time"

	"github.com/google/uuid"

	"bloggerum-backend/internal/shared/pagination"
)

const MaxTitleLength = 300

// Post là domain entity - ánh xạ 1:1 với bảng posts
type Post struct {
	ID          uuid.UUID
	UserID      uuid.UUID // bất biến sau khi tạo
	Title       string
	Body        Document
	Thumbnail   string // public URL
	Tags        []string
	SearchWords []string // dẫn xuất từ title + tags + body
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy là predicate ownership duy nhất cho update/delete
func (p *Post) OwnedBy(userID string) bool {
	return userID != "" && p.UserID.String() == userID
}

// Reindex tính lại search_words sau mỗi thay đổi nội dung
func (p *Post) Reindex() {
	p.SearchWords = SearchWords(p.Title, p.Tags, p.Body)
}

// Author là phần public của user được join vào post
type Author struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
	Bio    string    `json:"bio"`
}

// PostView là denormalized post trả về client
type PostView struct {
	ID        uuid.UUID `json:"_id"`
	Title     string    `json:"title"`
	Body      Document  `json:"body"`
	Thumbnail string    `json:"thumbnail"`
	Tags      []string  `json:"tags"`
	User      Author    `json:"user"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostList struct {
	Posts      []PostView `json:"posts"`
	TotalPages int        `json:"totalPages"`
}

// PostQuery: Search khác rỗng thì bỏ qua UserID và Tag
type PostQuery struct {
	UserID string
	Tag    string
	Search string
	Page   pagination.Params
}
