package post

import (
	"strings"
	"unicode/utf8"
)

// CreatePostRequest đến từ multipart form
type CreatePostRequest struct {
	Title     string
	Body      string
	Tags      []string
	Thumbnail []byte
}

func (r CreatePostRequest) Validate() error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if len(r.Thumbnail) == 0 {
		return ErrThumbnailRequired
	}
	return nil
}

// UpdatePostRequest: nil = giữ nguyên giá trị cũ
type UpdatePostRequest struct {
	Title     *string
	Body      *string
	Tags      *[]string
	Thumbnail []byte
	Version   *int // optimistic concurrency, không gửi thì dùng version vừa đọc
}

func (r UpdatePostRequest) Validate() error {
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Version != nil && *r.Version < 1 {
		return ErrInvalidVersion
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
