package promotion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

const HistorySessionKey = "promotion_history"

var ErrNotUndoable = errors.New("only an applied promotion can be undone")

type HistoryBackend interface {
	PromotionHistory(ctx context.Context) ([]entity.PromotionHistory, error)
	PromotionHistoryDetail(ctx context.Context, id int) (*entity.PromotionDetail, error)
	UndoPromotion(ctx context.Context, id int) error
}

// HistoryBrowser lists past batches. A batch's detail rows are fetched on the
// first expand and reused for as long as the browser lives.
type HistoryBrowser struct {
	Items    []entity.PromotionHistory       `json:"items"`
	Details  map[int]*entity.PromotionDetail `json:"details,omitempty"`
	Expanded map[int]bool                    `json:"expanded,omitempty"`
}

func (h *HistoryBrowser) List(ctx context.Context, b HistoryBackend) error {
	items, err := b.PromotionHistory(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []entity.PromotionHistory{}
	}
	h.Items = items
	return nil
}

func (h *HistoryBrowser) Find(id int) (entity.PromotionHistory, bool) {
	for _, item := range h.Items {
		if item.ID == id {
			return item, true
		}
	}
	return entity.PromotionHistory{}, false
}

// Expand shows the detail of batch id, fetching it only if it is not cached.
func (h *HistoryBrowser) Expand(ctx context.Context, b HistoryBackend, id int) (*entity.PromotionDetail, error) {
	if detail, ok := h.Details[id]; ok {
		h.Remember(id, detail)
		return detail, nil
	}

	detail, err := b.PromotionHistoryDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Remember(id, detail)
	return detail, nil
}

// Remember caches detail for batch id and marks it expanded.
func (h *HistoryBrowser) Remember(id int, detail *entity.PromotionDetail) {
	if h.Details == nil {
		h.Details = map[int]*entity.PromotionDetail{}
	}
	if h.Expanded == nil {
		h.Expanded = map[int]bool{}
	}
	h.Details[id] = detail
	h.Expanded[id] = true
}

// Collapse hides the detail of batch id; the cached rows are kept.
func (h *HistoryBrowser) Collapse(id int) {
	delete(h.Expanded, id)
}

// ExpandedIDs returns the expanded batch ids in ascending order.
func (h *HistoryBrowser) ExpandedIDs() []int {
	ids := make([]int, 0, len(h.Expanded))
	for id, open := range h.Expanded {
		if open {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Forget drops everything cached about batch id.
func (h *HistoryBrowser) Forget(id int) {
	delete(h.Details, id)
	delete(h.Expanded, id)
}

// Undo reverts batch id. It needs an explicit confirmation and a batch that
// is still applied; afterwards the list is fetched again.
func (h *HistoryBrowser) Undo(ctx context.Context, b HistoryBackend, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}

	item, ok := h.Find(id)
	if !ok {
		if err := h.List(ctx, b); err != nil {
			return err
		}
		if item, ok = h.Find(id); !ok {
			return fmt.Errorf("promotion %d: %w", id, apperror.ErrNotFound)
		}
	}
	if item.Status != entity.HistoryApplied {
		return apperror.New(http.StatusConflict, ErrNotUndoable.Error(), ErrNotUndoable)
	}

	if err := b.UndoPromotion(ctx, id); err != nil {
		return err
	}
	h.Forget(id)
	return h.List(ctx, b)
}

func LoadHistory(s *session.Session) (*HistoryBrowser, error) {
	h := &HistoryBrowser{}
	if _, err := s.Load(HistorySessionKey, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HistoryBrowser) SaveTo(s *session.Session) error {
	return s.Put(HistorySessionKey, h)
}
