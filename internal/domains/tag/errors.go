package tag

import "bloggerum-backend/internal/shared/apperror"

var (
	ErrTagNameRequired = apperror.New(apperror.KindValidation, "Tag name is required")
	ErrTagNameTooLong  = apperror.New(apperror.KindValidation, "Tag name is too long")
)
