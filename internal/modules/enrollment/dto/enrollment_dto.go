package dto

type EnrollmentInput struct {
	StudentID int `json:"student_id" validate:"required,gt=0"`
	SubjectID int `json:"subject_id" validate:"required,gt=0"`
}

type EnrollmentFilter struct {
	StudentID *int `form:"student_id"`
	SubjectID *int `form:"subject_id"`
}
