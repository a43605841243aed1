package entity

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar date exchanged with the backend as YYYY-MM-DD.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	s = strings.Trim(s, `"`)

	// some endpoints send full timestamps for date columns
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

type AcademicYear struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	IsCurrent bool   `json:"is_current"`
}

// CurrentYear returns the first year flagged current. The backend keeps at most
// one; if it ever sends more, the first one wins.
func CurrentYear(years []AcademicYear) *AcademicYear {
	for i := range years {
		if years[i].IsCurrent {
			y := years[i]
			return &y
		}
	}
	return nil
}

func FindYear(years []AcademicYear, id int) *AcademicYear {
	for i := range years {
		if years[i].ID == id {
			y := years[i]
			return &y
		}
	}
	return nil
}

// UserYearHistory is the placement snapshot of a user in a non-current year.
type UserYearHistory struct {
	UserID         int     `json:"user_id"`
	AcademicYearID int     `json:"academic_year_id"`
	Grade          *int    `json:"grade"`
	ClassID        *int    `json:"class_id"`
	ClassName      *string `json:"class_name"`
	RegionID       *int    `json:"region_id"`
}
