package dto

type SessionInput struct {
	SubjectID   int    `json:"subject_id" validate:"required,gt=0"`
	SessionNo   int    `json:"session_no" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Date        string `json:"date" validate:"required,isodate"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

type SessionFilter struct {
	SubjectID *int `form:"subject_id"`
}
