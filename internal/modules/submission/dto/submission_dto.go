package dto

type GradeInput struct {
	Grade    *float64 `json:"grade" validate:"required,gte=0,lte=100"`
	Feedback string   `json:"feedback,omitempty" validate:"max=2000"`
}
