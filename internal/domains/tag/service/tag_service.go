package service

import (
	"context"
	"time"

	"bloggerum-backend/internal/domains/tag"
	"bloggerum-backend/internal/shared/apperror"
)

type tagService struct {
	repo tag.Repository
}

func NewTagService(repo tag.Repository) tag.Service {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *tagService) Create(ctx context.Context, req tag.CreateTagRequest) (*tag.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("Invalid tag", err)
	}

	name := tag.NormalizeOne(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := s.repo.EnsureExists(ctx, name); err != nil {
		return nil, err
	}
	return &tag.Tag{Name: name, CreatedAt: time.Now().UTC()}, nil
}

// EnsureAll chạy tuần tự từng tag, dừng ở lỗi đầu tiên
func (s *tagService) EnsureAll(ctx context.Context, names []string) ([]string, error) {
	normalized := tag.Normalize(names)
	for _, name := range normalized {
		if err := validateName(name); err != nil {
			return nil, err
		}
	}
	for _, name := range normalized {
		if err := s.repo.EnsureExists(ctx, name); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

func validateName(name string) error {
	if name == "" {
		return tag.ErrTagNameRequired
	}
	if len([]rune(name)) > tag.MaxNameLength {
		return tag.ErrTagNameTooLong
	}
	return nil
}
