// Package academicyear resolves which academic year a user is looking at and
// what grade, class and region apply to them in that year.
package academicyear

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

// SessionKey is where the context lives inside a console session.
const SessionKey = "year_context"

// CurrentSentinel selects live mode, same as an empty selection.
const CurrentSentinel = "current"

type YearSource interface {
	ListAcademicYears(ctx context.Context) ([]entity.AcademicYear, error)
	MyYearHistory(ctx context.Context) ([]entity.UserYearHistory, error)
}

type YearContext struct {
	AllYears     []entity.AcademicYear    `json:"all_years"`
	SelectedYear *entity.AcademicYear     `json:"selected_year"`
	History      []entity.UserYearHistory `json:"history"`
	Loaded       bool                     `json:"loaded"`

	user *entity.User
}

// New returns an empty context bound to user.
func New(user *entity.User) *YearContext {
	return &YearContext{user: user}
}

func (yc *YearContext) Bind(user *entity.User) {
	yc.user = user
}

func (yc *YearContext) User() *entity.User {
	return yc.user
}

// Load fetches the years and, for everyone but admins, the user's history.
// Fetch failures are logged and leave that part empty; nothing is retried.
func (yc *YearContext) Load(ctx context.Context, src YearSource, log *zap.Logger) {
	yc.AllYears = nil
	yc.History = nil
	yc.SelectedYear = nil

	years, err := src.ListAcademicYears(ctx)
	if err != nil {
		log.Warn("failed to fetch academic years", zap.Error(err))
	} else {
		yc.AllYears = years
	}

	if yc.user != nil && !yc.user.IsAdmin() {
		history, err := src.MyYearHistory(ctx)
		if err != nil {
			log.Warn("failed to fetch year history", zap.Int("user_id", yc.user.ID), zap.Error(err))
		} else {
			yc.History = history
		}
	}
	yc.Loaded = true
}

// SetYears installs a refetched year list after a year was created, edited or
// made current. A selection that no longer exists falls back to live mode.
func (yc *YearContext) SetYears(years []entity.AcademicYear) {
	yc.AllYears = years
	if yc.SelectedYear != nil {
		yc.SelectedYear = entity.FindYear(years, yc.SelectedYear.ID)
	}
}

// Clear drops every piece of state, as on logout.
func (yc *YearContext) Clear() {
	yc.AllYears = nil
	yc.SelectedYear = nil
	yc.History = nil
	yc.Loaded = false
	yc.user = nil
}

func (yc *YearContext) CurrentYear() *entity.AcademicYear {
	return entity.CurrentYear(yc.AllYears)
}

// SelectYear switches to the year with id; nil goes back to live mode. An id
// that is not among AllYears also ends in live mode, without an error.
func (yc *YearContext) SelectYear(id *int) {
	if id == nil {
		yc.SelectedYear = nil
		return
	}
	yc.SelectedYear = entity.FindYear(yc.AllYears, *id)
}

// SelectYearParam accepts "", "current" or a numeric id.
func (yc *YearContext) SelectYearParam(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == CurrentSentinel {
		yc.SelectYear(nil)
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return apperror.Validation(map[string]string{"year_id": "must be a year id or \"current\""})
	}
	yc.SelectYear(&id)
	return nil
}

// IsHistoricalMode is true only while a non-current year is selected.
func (yc *YearContext) IsHistoricalMode() bool {
	return yc.SelectedYear != nil && !yc.SelectedYear.IsCurrent
}

// RequireLive refuses write actions while a past year is being viewed.
func (yc *YearContext) RequireLive() error {
	if yc.IsHistoricalMode() {
		return apperror.ErrHistoricalMode
	}
	return nil
}

func (yc *YearContext) historyEntry() *entity.UserYearHistory {
	if yc.SelectedYear == nil {
		return nil
	}
	for i := range yc.History {
		if yc.History[i].AcademicYearID == yc.SelectedYear.ID {
			return &yc.History[i]
		}
	}
	return nil
}

func (yc *YearContext) ActiveClassID() *int {
	if !yc.IsHistoricalMode() {
		if yc.user == nil {
			return nil
		}
		return yc.user.ClassID
	}
	if h := yc.historyEntry(); h != nil {
		return h.ClassID
	}
	return nil
}

func (yc *YearContext) ActiveGrade() *int {
	if !yc.IsHistoricalMode() {
		if yc.user == nil {
			return nil
		}
		return yc.user.Grade
	}
	if h := yc.historyEntry(); h != nil {
		return h.Grade
	}
	return nil
}

func (yc *YearContext) ActiveClassName() *string {
	if !yc.IsHistoricalMode() {
		if yc.user == nil {
			return nil
		}
		return yc.user.ClassName
	}
	if h := yc.historyEntry(); h != nil {
		return h.ClassName
	}
	return nil
}

// ActiveRegionID falls back to the live region when the history entry has none,
// since a user rarely moves between regions.
func (yc *YearContext) ActiveRegionID() *int {
	var live *int
	if yc.user != nil {
		live = yc.user.RegionID
	}
	if !yc.IsHistoricalMode() {
		return live
	}
	if h := yc.historyEntry(); h != nil && h.RegionID != nil {
		return h.RegionID
	}
	return live
}

// View is the JSON shape handed to the browser.
type View struct {
	Years          []entity.AcademicYear `json:"years"`
	CurrentYear    *entity.AcademicYear  `json:"current_year"`
	SelectedYear   *entity.AcademicYear  `json:"selected_year"`
	HistoricalMode bool                  `json:"historical_mode"`
	ClassID        *int                  `json:"class_id"`
	ClassName      *string               `json:"class_name"`
	Grade          *int                  `json:"grade"`
	RegionID       *int                  `json:"region_id"`
}

func (yc *YearContext) View() View {
	years := yc.AllYears
	if years == nil {
		years = []entity.AcademicYear{}
	}
	return View{
		Years:          years,
		CurrentYear:    yc.CurrentYear(),
		SelectedYear:   yc.SelectedYear,
		HistoricalMode: yc.IsHistoricalMode(),
		ClassID:        yc.ActiveClassID(),
		ClassName:      yc.ActiveClassName(),
		Grade:          yc.ActiveGrade(),
		RegionID:       yc.ActiveRegionID(),
	}
}

// FromSession restores the context stored in s, bound to the session user.
// A session without one yields an empty, unloaded context.
func FromSession(s *session.Session) (*YearContext, error) {
	yc := New(s.User)
	if _, err := s.Load(SessionKey, yc); err != nil {
		return nil, err
	}
	yc.Bind(s.User)
	return yc, nil
}

func (yc *YearContext) SaveTo(s *session.Session) error {
	return s.Put(SessionKey, yc)
}
