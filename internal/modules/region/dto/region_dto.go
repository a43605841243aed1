package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

// Options is one dependent list for a form. A failed load yields an empty
// Data and a message in Error; it never fails the sibling lists.
type Options[T any] struct {
	Data  []T    `json:"data"`
	Error string `json:"error,omitempty"`
}

type AvailableUsersFilter struct {
	Role     string `form:"role" validate:"omitempty,oneof=admin teacher student parent student_parent"`
	RegionID *int   `form:"region_id"`
	ClassID  *int   `form:"class_id"`
	Search   string `form:"search"`
}

type FormOptionsFilter struct {
	RegionID *int `form:"region_id"`
}

// FormOptions bundles the lists a student, teacher or class form loads on open.
type FormOptions struct {
	Regions  Options[entity.Region]  `json:"regions"`
	Classes  Options[entity.Class]   `json:"classes"`
	Teachers Options[entity.Teacher] `json:"teachers"`
}
