package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

type StudentInput struct {
	NIS            string `json:"nis" validate:"required,nis,max=20"`
	Name           string `json:"name" validate:"required,notblank,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password,omitempty" validate:"omitempty,min=6"`
	ParentPassword string `json:"parent_password,omitempty" validate:"omitempty,min=6"`
	Gender         string `json:"gender" validate:"required,oneof=male female"`
	RegionID       *int   `json:"region_id" validate:"omitempty,gt=0"`
	ClassID        *int   `json:"class_id" validate:"omitempty,gt=0"`
	DOB            string `json:"dob,omitempty" validate:"omitempty,isodate"`
	BirthPlace     string `json:"birth_place,omitempty" validate:"max=100"`
	Religion       string `json:"religion,omitempty" validate:"max=50"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active inactive graduated"`
	Address        string `json:"address,omitempty" validate:"max=255"`
}

// ValidateFields enforces that a class is only chosen inside a region.
func (in StudentInput) ValidateFields() map[string]string {
	if in.ClassID != nil && in.RegionID == nil {
		return map[string]string{"class_id": "select a region before choosing a class"}
	}
	return nil
}

// CreateStudentInput is the add form: a password is mandatory there.
type CreateStudentInput struct {
	StudentInput
}

func (in CreateStudentInput) ValidateFields() map[string]string {
	fields := in.StudentInput.ValidateFields()
	if in.Password == "" {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["password"] = "this field is required"
	}
	return fields
}

// RegisterPayload is the body sent to the register endpoint.
type RegisterPayload struct {
	StudentInput
	Role entity.Role `json:"role"`
}

type StudentFilter struct {
	RegionID *int   `form:"region_id"`
	ClassID  *int   `form:"class_id"`
	Search   string `form:"search"`
	Skip     int    `form:"skip" validate:"gte=0"`
	Limit    int    `form:"limit" validate:"gte=0,lte=500"`
}

func (f StudentFilter) UserFilter() entity.UserFilter {
	return entity.UserFilter{
		RegionID: f.RegionID,
		ClassID:  f.ClassID,
		Search:   f.Search,
		Skip:     f.Skip,
		Limit:    f.Limit,
	}
}
