// Package promotion drives the year-end promotion wizard and the browser over
// past promotion batches.
package promotion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/session"
)

const WizardSessionKey = "promotion_wizard"

type Step string

const (
	// StepClosed is the zero step: the wizard is not showing.
	StepClosed     Step = ""
	StepWarning    Step = "warning"
	StepPreview    Step = "preview"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

var (
	ErrInvalidTransition = errors.New("invalid promotion wizard transition")
	ErrNotCandidate      = errors.New("student is not part of the promotion preview")
)

type WizardBackend interface {
	PromotionPreview(ctx context.Context) (*entity.PromotionPreview, error)
	ConfirmPromotion(ctx context.Context, excluded []int) (*entity.PromotionResult, error)
}

type Counts struct {
	Promoted  int `json:"promoted"`
	Graduated int `json:"graduated"`
}

// Wizard is the whole state of one run. Exclusions live only here; the
// backend sees them once, on confirm.
type Wizard struct {
	Step     Step                     `json:"step"`
	Preview  *entity.PromotionPreview `json:"preview,omitempty"`
	Excluded map[int]bool             `json:"excluded,omitempty"`
	Search   string                   `json:"search,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Result   *entity.PromotionResult  `json:"result,omitempty"`
}

func (w *Wizard) transition(from Step, to Step) error {
	if w.Step != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, stepName(w.Step), to)
	}
	w.Step = to
	return nil
}

func stepName(s Step) string {
	if s == StepClosed {
		return "closed"
	}
	return string(s)
}

// Start opens the wizard on the warning screen. A run is never resumed, so
// any previous state is discarded.
func (w *Wizard) Start() {
	w.Close()
	w.Step = StepWarning
}

// LoadPreview asks the backend for the candidate set. On failure the wizard
// stays on the warning screen with the error shown.
func (w *Wizard) LoadPreview(ctx context.Context, b WizardBackend) error {
	if err := w.BeginPreview(); err != nil {
		return err
	}
	preview, err := b.PromotionPreview(ctx)
	return w.ApplyPreview(preview, err)
}

// BeginPreview checks that a preview may be requested now and clears the
// previous error.
func (w *Wizard) BeginPreview() error {
	if w.Step != StepWarning {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, stepName(w.Step), StepPreview)
	}
	w.Error = ""
	return nil
}

// ApplyPreview records the backend's answer to a preview request. It fails if
// the wizard left the warning screen while the request was in flight.
func (w *Wizard) ApplyPreview(preview *entity.PromotionPreview, err error) error {
	if w.Step != StepWarning {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, stepName(w.Step), StepPreview)
	}
	if err != nil {
		w.Error = client.ErrorMessage(err)
		return err
	}
	w.Preview = preview
	w.Excluded = map[int]bool{}
	w.Search = ""
	w.Step = StepPreview
	return nil
}

func (w *Wizard) Back() error {
	if err := w.transition(StepPreview, StepWarning); err != nil {
		return err
	}
	w.Error = ""
	return nil
}

// ToggleExclusion flips whether studentID is left out of the batch.
func (w *Wizard) ToggleExclusion(studentID int) error {
	if w.Step != StepPreview || w.Preview == nil {
		return fmt.Errorf("%w: exclusions need a preview", ErrInvalidTransition)
	}
	if !isCandidate(w.Preview, studentID) {
		return ErrNotCandidate
	}
	if w.Excluded == nil {
		w.Excluded = map[int]bool{}
	}
	if w.Excluded[studentID] {
		delete(w.Excluded, studentID)
	} else {
		w.Excluded[studentID] = true
	}
	return nil
}

func (w *Wizard) IsExcluded(studentID int) bool {
	return w.Excluded[studentID]
}

// ExcludedIDs returns the excluded student ids in ascending order.
func (w *Wizard) ExcludedIDs() []int {
	ids := make([]int, 0, len(w.Excluded))
	for id, excluded := range w.Excluded {
		if excluded {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (w *Wizard) Counts() Counts {
	return ActiveCounts(w.Preview, w.Excluded)
}

// BeginConfirm moves to processing and returns the exclusions to send.
func (w *Wizard) BeginConfirm() ([]int, error) {
	if err := w.transition(StepPreview, StepProcessing); err != nil {
		return nil, err
	}
	w.Error = ""
	return w.ExcludedIDs(), nil
}

// FinishConfirm records the backend's answer: success ends the run, an error
// returns to the preview with the message shown.
func (w *Wizard) FinishConfirm(result *entity.PromotionResult, err error) error {
	if w.Step != StepProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, stepName(w.Step), StepSuccess)
	}
	if err != nil {
		w.Step = StepPreview
		w.Error = client.ErrorMessage(err)
		return err
	}
	w.Step = StepSuccess
	w.Result = result
	return nil
}

func (w *Wizard) Confirm(ctx context.Context, b WizardBackend) error {
	excluded, err := w.BeginConfirm()
	if err != nil {
		return err
	}
	result, err := b.ConfirmPromotion(ctx, excluded)
	return w.FinishConfirm(result, err)
}

// Close hides the wizard and forgets everything about the run.
func (w *Wizard) Close() {
	*w = Wizard{}
}

// ActiveCounts is the number of candidates per status that are not excluded.
func ActiveCounts(preview *entity.PromotionPreview, excluded map[int]bool) Counts {
	if preview == nil {
		return Counts{}
	}
	return Counts{
		Promoted:  countActive(preview.Promoted, excluded),
		Graduated: countActive(preview.Graduated, excluded),
	}
}

func countActive(candidates []entity.PromotionCandidate, excluded map[int]bool) int {
	n := 0
	for _, c := range candidates {
		if !excluded[c.StudentID] {
			n++
		}
	}
	return n
}

func isCandidate(preview *entity.PromotionPreview, studentID int) bool {
	for _, list := range [][]entity.PromotionCandidate{preview.Promoted, preview.Graduated} {
		for _, c := range list {
			if c.StudentID == studentID {
				return true
			}
		}
	}
	return false
}

// FilterCandidates keeps the rows whose name, NIS, grade or class contains
// query, ignoring case. An empty query keeps everything.
func FilterCandidates(candidates []entity.PromotionCandidate, query string) []entity.PromotionCandidate {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.PromotionCandidate, 0, len(candidates))
	for _, c := range candidates {
		if query == "" || matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c entity.PromotionCandidate, query string) bool {
	fields := []string{c.StudentName, c.NIS}
	for _, grade := range []*int{c.OldGrade, c.NewGrade} {
		if grade != nil {
			fields = append(fields, strconv.Itoa(*grade))
		}
	}
	for _, class := range []*string{c.OldClass, c.NewClass} {
		if class != nil {
			fields = append(fields, *class)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

type CandidateRow struct {
	entity.PromotionCandidate
	Excluded bool `json:"excluded"`
}

// View is what the wizard screen renders. Counts ignore the search.
type View struct {
	Step      Step                    `json:"step"`
	FromYear  *string                 `json:"from_year,omitempty"`
	ToYear    *string                 `json:"to_year,omitempty"`
	Counts    Counts                  `json:"counts"`
	Total     Counts                  `json:"total"`
	Promoted  []CandidateRow          `json:"promoted"`
	Graduated []CandidateRow          `json:"graduated"`
	Excluded  []int                   `json:"excluded"`
	Search    string                  `json:"search"`
	Error     string                  `json:"error,omitempty"`
	Result    *entity.PromotionResult `json:"result,omitempty"`
}

// Filter sets the search text and returns the narrowed view.
func (w *Wizard) Filter(query string) View {
	w.Search = query
	return w.View()
}

func (w *Wizard) View() View {
	v := View{
		Step:      w.Step,
		Counts:    w.Counts(),
		Promoted:  []CandidateRow{},
		Graduated: []CandidateRow{},
		Excluded:  w.ExcludedIDs(),
		Search:    w.Search,
		Error:     w.Error,
		Result:    w.Result,
	}
	if w.Preview == nil {
		return v
	}
	v.FromYear = w.Preview.FromYear
	v.ToYear = w.Preview.ToYear
	v.Total = Counts{Promoted: len(w.Preview.Promoted), Graduated: len(w.Preview.Graduated)}
	for _, c := range FilterCandidates(w.Preview.Promoted, w.Search) {
		v.Promoted = append(v.Promoted, CandidateRow{PromotionCandidate: c, Excluded: w.IsExcluded(c.StudentID)})
	}
	for _, c := range FilterCandidates(w.Preview.Graduated, w.Search) {
		v.Graduated = append(v.Graduated, CandidateRow{PromotionCandidate: c, Excluded: w.IsExcluded(c.StudentID)})
	}
	return v
}

// LoadWizard restores the wizard kept in s; a session without one yields a
// closed wizard.
func LoadWizard(s *session.Session) (*Wizard, error) {
	w := &Wizard{}
	if _, err := s.Load(WizardSessionKey, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SaveTo stores the wizard in s. A closed wizard is removed instead.
func (w *Wizard) SaveTo(s *session.Session) error {
	if w.Step == StepClosed {
		s.Drop(WizardSessionKey)
		return nil
	}
	return s.Put(WizardSessionKey, w)
}
