package promotion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type fakeHistoryBackend struct {
	items       []entity.PromotionHistory
	listCalls   int
	detailCalls map[int]int
	undone      []int
	undoErr     error
}

func newFakeHistory() *fakeHistoryBackend {
	return &fakeHistoryBackend{
		items: []entity.PromotionHistory{
			{ID: 1, Status: entity.HistoryUndone, PromotedCount: 10},
			{ID: 2, Status: entity.HistoryApplied, PromotedCount: 12, GraduatedCount: 3},
		},
		detailCalls: map[int]int{},
	}
}

func (f *fakeHistoryBackend) PromotionHistory(context.Context) ([]entity.PromotionHistory, error) {
	f.listCalls++
	out := make([]entity.PromotionHistory, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeHistoryBackend) PromotionHistoryDetail(_ context.Context, id int) (*entity.PromotionDetail, error) {
	f.detailCalls[id]++
	for _, item := range f.items {
		if item.ID == id {
			return &entity.PromotionDetail{
				PromotionHistory: item,
				Details:          []entity.PromotionCandidate{{StudentID: id * 100}},
			}, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeHistoryBackend) UndoPromotion(_ context.Context, id int) error {
	if f.undoErr != nil {
		return f.undoErr
	}
	f.undone = append(f.undone, id)
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = entity.HistoryUndone
		}
	}
	return nil
}

func TestHistoryBrowser_ExpandFetchesOnce(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	h := &HistoryBrowser{}
	require.NoError(t, h.List(ctx, b))

	first, err := h.Expand(ctx, b, 2)
	require.NoError(t, err)
	h.Collapse(2)
	second, err := h.Expand(ctx, b, 2)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, b.detailCalls[2])
	assert.True(t, h.Expanded[2])
}

func TestHistoryBrowser_UndoRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	h := &HistoryBrowser{}
	require.NoError(t, h.List(ctx, b))

	err := h.Undo(ctx, b, 2, false)

	assert.ErrorIs(t, err, apperror.ErrConfirmationRequired)
	assert.Empty(t, b.undone)
}

func TestHistoryBrowser_UndoOnlyApplied(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	h := &HistoryBrowser{}
	require.NoError(t, h.List(ctx, b))

	err := h.Undo(ctx, b, 1, true)

	assert.ErrorIs(t, err, ErrNotUndoable)
	assert.Equal(t, 409, apperror.MapErrorToStatus(err))
	assert.Empty(t, b.undone)
}

func TestHistoryBrowser_UndoRefetchesAndDropsDetail(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	h := &HistoryBrowser{}
	require.NoError(t, h.List(ctx, b))
	_, err := h.Expand(ctx, b, 2)
	require.NoError(t, err)

	require.NoError(t, h.Undo(ctx, b, 2, true))

	assert.Equal(t, []int{2}, b.undone)
	assert.Equal(t, 2, b.listCalls)
	item, ok := h.Find(2)
	require.True(t, ok)
	assert.Equal(t, entity.HistoryUndone, item.Status)
	assert.NotContains(t, h.Details, 2)

	detail, err := h.Expand(ctx, b, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.HistoryUndone, detail.Status)
	assert.Equal(t, 2, b.detailCalls[2])
}

func TestHistoryBrowser_UndoLoadsListWhenEmpty(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	h := &HistoryBrowser{}

	require.NoError(t, h.Undo(ctx, b, 2, true))
	assert.Equal(t, []int{2}, b.undone)

	assert.ErrorIs(t, h.Undo(ctx, b, 77, true), apperror.ErrNotFound)
}

func TestHistoryBrowser_UndoFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	b := newFakeHistory()
	b.undoErr = errors.New("boom")
	h := &HistoryBrowser{}
	require.NoError(t, h.List(ctx, b))

	require.Error(t, h.Undo(ctx, b, 2, true))

	item, _ := h.Find(2)
	assert.Equal(t, entity.HistoryApplied, item.Status)
	assert.Equal(t, 1, b.listCalls)
}
