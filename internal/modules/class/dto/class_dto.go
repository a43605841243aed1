package dto

type ClassInput struct {
	Name              string `json:"name" validate:"required,notblank,max=50"`
	RegionID          int    `json:"region_id" validate:"required,gt=0"`
	Grade             int    `json:"grade" validate:"required,min=1,max=12"`
	HomeroomTeacherID *int   `json:"homeroom_teacher_id,omitempty" validate:"omitempty,gt=0"`
}

type ClassFilter struct {
	RegionID *int `form:"region_id"`
}
