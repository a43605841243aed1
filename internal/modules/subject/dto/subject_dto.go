package dto

type SubjectInput struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	ClassID     int    `json:"class_id" validate:"required,gt=0"`
	TeacherID   *int   `json:"teacher_id,omitempty" validate:"omitempty,gt=0"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

type SubjectFilter struct {
	ClassID *int `form:"class_id"`
}
