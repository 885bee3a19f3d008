package post

import "bloggerum-backend/internal/shared/apperror"

var (
	ErrPostNotFound    = apperror.New(apperror.KindNotFound, "Post not found")
	ErrNotPostOwner    = apperror.New(apperror.KindAuthorization, "User not authorized")
	ErrVersionConflict = apperror.New(apperror.KindConflict, "Post was modified by another request")
)

// Validation
var (
	ErrTitleRequired     = apperror.New(apperror.KindValidation, "Title is required")
	ErrTitleTooLong      = apperror.New(apperror.KindValidation, "Title is too long")
	ErrThumbnailRequired = apperror.New(apperror.KindValidation, "Thumbnail is required")
	ErrInvalidBody       = apperror.New(apperror.KindValidation, "Invalid post body")
	ErrInvalidVersion    = apperror.New(apperror.KindValidation, "Invalid version")
	ErrInvalidTags       = apperror.New(apperror.KindValidation, "Invalid tags")
)
