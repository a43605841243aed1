package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

const DefaultLimit = 50

type LogFilter struct {
	Skip   int    `form:"skip" validate:"gte=0"`
	Limit  int    `form:"limit" validate:"gte=0,lte=500"`
	Action string `form:"action" validate:"max=100"`
	UserID *int   `form:"user_id" validate:"omitempty,gt=0"`
}

func (f LogFilter) Entity() entity.LogFilter {
	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	return entity.LogFilter{
		Skip:   f.Skip,
		Limit:  limit,
		Action: f.Action,
		UserID: f.UserID,
	}
}
