package dto

import (
	"strconv"
)

type BannerInput struct {
	Title    string `form:"title" json:"title" validate:"required,notblank,max=200"`
	Link     string `form:"link" json:"link,omitempty" validate:"omitempty,url"`
	IsActive bool   `form:"is_active" json:"is_active"`
}

// Fields renders the input as multipart form fields.
func (in BannerInput) Fields() map[string]string {
	fields := map[string]string{
		"title":     in.Title,
		"is_active": strconv.FormatBool(in.IsActive),
	}
	if in.Link != "" {
		fields["link"] = in.Link
	}
	return fields
}
