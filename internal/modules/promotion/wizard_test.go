package promotion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/session"
)

type fakeWizardBackend struct {
	preview    *entity.PromotionPreview
	previewErr error
	result     *entity.PromotionResult
	confirmErr error
	sent       []int
	confirms   int
}

func (f *fakeWizardBackend) PromotionPreview(context.Context) (*entity.PromotionPreview, error) {
	return f.preview, f.previewErr
}

func (f *fakeWizardBackend) ConfirmPromotion(_ context.Context, excluded []int) (*entity.PromotionResult, error) {
	f.confirms++
	f.sent = excluded
	return f.result, f.confirmErr
}

func ptr[T any](v T) *T { return &v }

func candidate(id int, name string, grade int, class string, status entity.PromotionStatus) entity.PromotionCandidate {
	c := entity.PromotionCandidate{
		StudentID:   id,
		StudentName: name,
		OldGrade:    ptr(grade),
		OldClass:    ptr(class),
		Status:      status,
	}
	if status == entity.PromotionPromoted {
		c.NewGrade = ptr(grade + 1)
	}
	return c
}

func samplePreview() *entity.PromotionPreview {
	return &entity.PromotionPreview{
		Promoted: []entity.PromotionCandidate{
			candidate(1, "Ana Wijaya", 7, "7A", entity.PromotionPromoted),
			candidate(2, "Budi Santoso", 8, "8B", entity.PromotionPromoted),
			candidate(3, "Citra Lestari", 10, "10C", entity.PromotionPromoted),
		},
		Graduated: []entity.PromotionCandidate{
			candidate(4, "Dewi Kurnia", 12, "12A", entity.PromotionGraduated),
			candidate(5, "Eko Prasetyo", 12, "12B", entity.PromotionGraduated),
		},
		FromYear: ptr("2023/2024"),
		ToYear:   ptr("2024/2025"),
	}
}

func previewWizard(t *testing.T) (*Wizard, *fakeWizardBackend) {
	t.Helper()
	b := &fakeWizardBackend{preview: samplePreview()}
	w := &Wizard{}
	w.Start()
	require.NoError(t, w.LoadPreview(context.Background(), b))
	require.Equal(t, StepPreview, w.Step)
	return w, b
}

func TestWizard_StartResetsPreviousRun(t *testing.T) {
	w, _ := previewWizard(t)
	require.NoError(t, w.ToggleExclusion(1))
	w.Search = "ana"

	w.Start()

	assert.Equal(t, StepWarning, w.Step)
	assert.Nil(t, w.Preview)
	assert.Empty(t, w.Excluded)
	assert.Empty(t, w.Search)
}

func TestWizard_PreviewFailureStaysOnWarning(t *testing.T) {
	b := &fakeWizardBackend{previewErr: &client.APIError{
		Status: http.StatusBadRequest,
		Detail: json.RawMessage(`"No current academic year"`),
	}}
	w := &Wizard{}
	w.Start()

	err := w.LoadPreview(context.Background(), b)

	require.Error(t, err)
	assert.Equal(t, StepWarning, w.Step)
	assert.Equal(t, "No current academic year", w.Error)
	assert.Nil(t, w.Preview)
}

func TestWizard_IllegalTransitions(t *testing.T) {
	b := &fakeWizardBackend{preview: samplePreview()}
	ctx := context.Background()

	closed := &Wizard{}
	assert.ErrorIs(t, closed.LoadPreview(ctx, b), ErrInvalidTransition)
	assert.ErrorIs(t, closed.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, closed.ToggleExclusion(1), ErrInvalidTransition)
	assert.ErrorIs(t, closed.Confirm(ctx, b), ErrInvalidTransition)

	warning := &Wizard{}
	warning.Start()
	assert.ErrorIs(t, warning.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, warning.Confirm(ctx, b), ErrInvalidTransition)
	assert.Zero(t, b.confirms)

	assert.ErrorIs(t, warning.FinishConfirm(nil, nil), ErrInvalidTransition)
}

func TestWizard_BackReturnsToWarning(t *testing.T) {
	w, _ := previewWizard(t)
	w.Error = "stale"

	require.NoError(t, w.Back())

	assert.Equal(t, StepWarning, w.Step)
	assert.Empty(t, w.Error)
}

func TestWizard_ToggleExclusionTwiceRestoresSet(t *testing.T) {
	w, _ := previewWizard(t)
	require.NoError(t, w.ToggleExclusion(2))
	before := w.ExcludedIDs()

	for _, id := range []int{1, 4} {
		require.NoError(t, w.ToggleExclusion(id))
		require.NoError(t, w.ToggleExclusion(id))
		assert.Equal(t, before, w.ExcludedIDs())
	}
}

func TestWizard_ToggleUnknownStudent(t *testing.T) {
	w, _ := previewWizard(t)

	assert.ErrorIs(t, w.ToggleExclusion(99), ErrNotCandidate)
	assert.Empty(t, w.ExcludedIDs())
}

func TestActiveCounts_ExclusionOnlyNarrowsTheSet(t *testing.T) {
	preview := samplePreview()

	tests := []struct {
		name     string
		excluded []int
	}{
		{"none", nil},
		{"one promoted", []int{2}},
		{"one of each", []int{1, 5}},
		{"all graduated", []int{4, 5}},
		{"everyone", []int{1, 2, 3, 4, 5}},
		{"unknown id", []int{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			excluded := map[int]bool{}
			for _, id := range tt.excluded {
				excluded[id] = true
			}

			counts := ActiveCounts(preview, excluded)

			assert.Equal(t, len(preview.Promoted), counts.Promoted+excludedIn(preview.Promoted, excluded))
			assert.Equal(t, len(preview.Graduated), counts.Graduated+excludedIn(preview.Graduated, excluded))
			assert.Len(t, preview.Promoted, 3)
			assert.Len(t, preview.Graduated, 2)
		})
	}
}

func excludedIn(list []entity.PromotionCandidate, excluded map[int]bool) int {
	n := 0
	for _, c := range list {
		if excluded[c.StudentID] {
			n++
		}
	}
	return n
}

func TestActiveCounts_NilPreview(t *testing.T) {
	assert.Equal(t, Counts{}, ActiveCounts(nil, map[int]bool{1: true}))
}

func TestFilterCandidates(t *testing.T) {
	list := samplePreview().Promoted

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 3}},
		{"  ", []int{1, 2, 3}},
		{"BUDI", []int{2}},
		{"8b", []int{2}},
		{"10", []int{3}},
		{"8", []int{1, 2}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []int
			for _, c := range FilterCandidates(list, tt.query) {
				got = append(got, c.StudentID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWizard_FilterKeepsExclusionsAndCounts(t *testing.T) {
	w, _ := previewWizard(t)
	require.NoError(t, w.ToggleExclusion(1))
	require.NoError(t, w.ToggleExclusion(4))
	counts := w.Counts()

	view := w.Filter("budi")

	require.Len(t, view.Promoted, 1)
	assert.Equal(t, 2, view.Promoted[0].StudentID)
	assert.Empty(t, view.Graduated)
	assert.Equal(t, counts, view.Counts)
	assert.Equal(t, []int{1, 4}, view.Excluded)
	assert.Equal(t, Counts{Promoted: 3, Graduated: 2}, view.Total)

	view = w.Filter("")
	assert.Len(t, view.Promoted, 3)
	assert.True(t, view.Promoted[0].Excluded)
	assert.False(t, view.Promoted[1].Excluded)
}

func TestWizard_ConfirmSendsExclusions(t *testing.T) {
	w, b := previewWizard(t)
	b.result = &entity.PromotionResult{Message: "done", PromotedCount: 2, GraduatedCount: 2}
	require.NoError(t, w.ToggleExclusion(5))
	require.NoError(t, w.ToggleExclusion(2))

	require.NoError(t, w.Confirm(context.Background(), b))

	assert.Equal(t, StepSuccess, w.Step)
	assert.Equal(t, []int{2, 5}, b.sent)
	assert.Equal(t, b.result, w.Result)
}

func TestWizard_ConfirmFailureReturnsToPreview(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   string
	}{
		{"string", `"Promotion already applied"`, "Promotion already applied"},
		{"list", `[{"loc":["body","excluded_student_ids"],"msg":"Value error, invalid id"}]`, "invalid id"},
		{"object", `{"message":"Backend busy"}`, "Backend busy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, b := previewWizard(t)
			require.NoError(t, w.ToggleExclusion(3))
			b.confirmErr = &client.APIError{Status: http.StatusBadRequest, Detail: json.RawMessage(tt.detail)}

			err := w.Confirm(context.Background(), b)

			require.Error(t, err)
			assert.Equal(t, StepPreview, w.Step)
			assert.Equal(t, tt.want, w.Error)
			assert.Equal(t, []int{3}, w.ExcludedIDs())
		})
	}
}

func TestWizard_ConfirmNetworkError(t *testing.T) {
	w, b := previewWizard(t)
	b.confirmErr = errors.New("connection refused")

	require.Error(t, w.Confirm(context.Background(), b))
	assert.Equal(t, StepPreview, w.Step)
	assert.Equal(t, "connection refused", w.Error)
}

func TestWizard_CloseResetsEverything(t *testing.T) {
	w, b := previewWizard(t)
	b.result = &entity.PromotionResult{Message: "done"}
	require.NoError(t, w.ToggleExclusion(1))
	w.Filter("ana")
	require.NoError(t, w.Confirm(context.Background(), b))

	w.Close()

	assert.Equal(t, Wizard{}, *w)
	assert.Equal(t, StepClosed, w.View().Step)
}

func TestWizard_SessionRoundTrip(t *testing.T) {
	w, _ := previewWizard(t)
	require.NoError(t, w.ToggleExclusion(4))
	w.Search = "dewi"

	s := &session.Session{ID: "sid"}
	require.NoError(t, w.SaveTo(s))

	restored, err := LoadWizard(s)
	require.NoError(t, err)
	assert.Equal(t, StepPreview, restored.Step)
	assert.Equal(t, []int{4}, restored.ExcludedIDs())
	assert.Equal(t, "dewi", restored.Search)
	assert.Equal(t, w.Counts(), restored.Counts())

	restored.Close()
	require.NoError(t, restored.SaveTo(s))
	again, err := LoadWizard(s)
	require.NoError(t, err)
	assert.Equal(t, StepClosed, again.Step)
}
