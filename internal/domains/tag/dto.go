package tag

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
	)
}
