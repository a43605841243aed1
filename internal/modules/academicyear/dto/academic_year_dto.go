package dto

import (
	"lemuel.com/eduspaceadmin/internal/entity"
)

type AcademicYearInput struct {
	Name      string `json:"name" validate:"required,notblank,max=50"`
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate"`
}

func (in AcademicYearInput) ValidateFields() map[string]string {
	start, errStart := entity.ParseDate(in.StartDate)
	end, errEnd := entity.ParseDate(in.EndDate)
	if errStart != nil || errEnd != nil {
		return nil
	}
	if !end.After(start.Time) {
		return map[string]string{"end_date": "end date must be after the start date"}
	}
	return nil
}

type SelectYearRequest struct {
	// YearID is a number, null or "current".
	YearID any `json:"year_id"`
}

type SnapshotRequest struct {
	AcademicYearID int `json:"academic_year_id" validate:"required,gt=0"`
}
