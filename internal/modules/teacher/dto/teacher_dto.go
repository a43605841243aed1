package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

type TeacherInput struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	RegionID *int   `json:"region_id" validate:"omitempty,gt=0"`
	ClassID  *int   `json:"class_id" validate:"omitempty,gt=0"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164|numeric"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Address  string `json:"address,omitempty" validate:"max=255"`
}

func (in TeacherInput) ValidateFields() map[string]string {
	if in.ClassID != nil && in.RegionID == nil {
		return map[string]string{"class_id": "select a region before choosing a class"}
	}
	return nil
}

type CreateTeacherInput struct {
	TeacherInput
}

func (in CreateTeacherInput) ValidateFields() map[string]string {
	fields := in.TeacherInput.ValidateFields()
	if in.Password == "" {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["password"] = "this field is required"
	}
	return fields
}

type RegisterPayload struct {
	TeacherInput
	Role entity.Role `json:"role"`
}

type TeacherFilter struct {
	RegionID *int   `form:"region_id"`
	Search   string `form:"search"`
	Skip     int    `form:"skip" validate:"gte=0"`
	Limit    int    `form:"limit" validate:"gte=0,lte=500"`
}
