package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloggerum-backend/internal/domains/image"
	"bloggerum-backend/internal/domains/post"
	"bloggerum-backend/internal/domains/tag"
	"bloggerum-backend/internal/infrastructure/storage"
	"bloggerum-backend/internal/shared/pagination"
	"bloggerum-backend/internal/shared/utils"
)

type postService struct {
	repo   post.Repository
	tags   tag.Service
	images image.Service
}

func NewPostService(repo post.Repository, tags tag.Service, images image.Service) post.Service {
	return &postService{repo: repo, tags: tags, images: images}
}

// ========================================
// QUERIES
// ========================================

func (s *postService) ListPosts(ctx context.Context, q post.PostQuery) (*post.PostList, error) {
	page := pagination.New(q.Page.Page, q.Page.Limit)
	criteria := post.ListCriteria{
		Limit:  page.Limit,
		Offset: page.Skip(),
	}

	if strings.TrimSpace(q.Search) != "" {
		// search thắng filter
		terms := post.Tokenize(q.Search)
		if len(terms) == 0 {
			// "!!!" không có term nào nên không khớp post nào
			return &post.PostList{Posts: []post.PostView{}, TotalPages: 0}, nil
		}
		criteria.Terms = terms
	} else {
		if q.UserID != "" {
			uid, err := uuid.Parse(q.UserID)
			if err != nil {
				// id sai format không khớp post nào
				return &post.PostList{Posts: []post.PostView{}, TotalPages: 0}, nil
			}
			criteria.UserID = &uid
		}
		criteria.Tag = tag.NormalizeOne(q.Tag)
	}

	views, total, err := s.repo.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []post.PostView{}
	}
	return &post.PostList{
		Posts:      views,
		TotalPages: pagination.TotalPages(total, page.Limit),
	}, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*post.PostView, error) {
	pid := utils.ParseStringToUUID(id)
	if pid == uuid.Nil {
		return nil, post.ErrPostNotFound
	}
	return s.repo.FindViewByID(ctx, pid)
}

// ========================================
// MUTATIONS
// ========================================

func (s *postService) CreatePost(ctx context.Context, userID string, req post.CreatePostRequest) (*post.PostView, error) {
	// STEP 1: validate
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, post.ErrNotPostOwner
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := post.ParseBody(req.Body)
	if err != nil {
		return nil, err
	}

	// STEP 2: tags (tuần tự, ON CONFLICT DO NOTHING)
	tags, err := s.tags.EnsureAll(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	// STEP 3: upload thumbnail
	thumbnail, err := s.images.Upload(ctx, image.UploadInput{
		Data:   req.Thumbnail,
		Resize: true,
		Prefix: storage.PrefixPosts,
	})
	if err != nil {
		return nil, err
	}

	// STEP 4: persist, lỗi thì dọn ảnh vừa upload
	p := &post.Post{
		UserID:    owner,
		Title:     strings.TrimSpace(req.Title),
		Body:      body,
		Thumbnail: thumbnail,
		Tags:      tags,
	}
	p.Reindex()

	if err := s.repo.Create(ctx, p); err != nil {
		s.images.DeleteOrQueue(ctx, thumbnail, "post create rolled back")
		return nil, err
	}

	log.Info().Str("post_id", p.ID.String()).Str("user_id", userID).Msg("Post created")
	return s.repo.FindViewByID(ctx, p.ID)
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID string, req post.UpdatePostRequest) (*post.PostView, error) {
	// STEP 1: load + ownership
	p, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, userID); err != nil {
		return nil, err
	}

	// STEP 2: validate + version
	if err := req.Validate(); err != nil {
		return nil, err
	}
	expected := p.Version
	if req.Version != nil {
		if *req.Version != p.Version {
			return nil, post.ErrVersionConflict
		}
		expected = *req.Version
	}

	// STEP 3: partial update, field nil giữ nguyên
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		body, err := post.ParseBody(*req.Body)
		if err != nil {
			return nil, err
		}
		p.Body = body
	}
	if req.Tags != nil {
		tags, err := s.tags.EnsureAll(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		p.Tags = tags
	}

	// STEP 4: thumbnail mới - upload trước, xoá cũ sau khi persist
	oldThumbnail := ""
	if len(req.Thumbnail) > 0 {
		url, err := s.images.Upload(ctx, image.UploadInput{
			Data:   req.Thumbnail,
			Resize: true,
			Prefix: storage.PrefixPosts,
		})
		if err != nil {
			return nil, err
		}
		oldThumbnail = p.Thumbnail
		p.Thumbnail = url
	}

	p.Reindex()
	if err := s.repo.Update(ctx, p, expected); err != nil {
		if oldThumbnail != "" {
			s.images.DeleteOrQueue(ctx, p.Thumbnail, "post update rolled back")
		}
		return nil, err
	}

	// STEP 5: dọn thumbnail cũ (lỗi thì vào retry queue)
	if oldThumbnail != "" {
		s.images.DeleteOrQueue(ctx, oldThumbnail, "thumbnail replaced")
	}

	return s.repo.FindViewByID(ctx, p.ID)
}

// DeletePost xoá thumbnail trước, record bị xoá kể cả khi xoá ảnh thất bại
func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	p, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if err := authorize(p, userID); err != nil {
		return err
	}

	s.images.DeleteOrQueue(ctx, p.Thumbnail, "post deleted")

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	log.Info().Str("post_id", p.ID.String()).Str("user_id", userID).Msg("Post deleted")
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *postService) load(ctx context.Context, postID string) (*post.Post, error) {
	pid, err := uuid.Parse(postID)
	if err != nil {
		return nil, post.ErrPostNotFound
	}
	return s.repo.FindByID(ctx, pid)
}

func authorize(p *post.Post, userID string) error {
	if !p.OwnedBy(userID) {
		return post.ErrNotPostOwner
	}
	return nil
}
