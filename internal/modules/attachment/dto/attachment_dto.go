package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

type AttachmentInput struct {
	Name string                `form:"name" json:"name" validate:"required,notblank,max=200"`
	Type entity.AttachmentType `form:"type" json:"type" validate:"required,oneof=material assignment other"`
}
