package dto

type AssignInput struct {
	TeacherID int `json:"teacher_id" validate:"required,gt=0"`
	SubjectID int `json:"subject_id" validate:"required,gt=0"`
}

type AssignmentFilter struct {
	TeacherID *int `form:"teacher_id"`
}
