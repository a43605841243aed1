package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/modules/promotion"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type PromotionService interface {
	Wizard(ctx context.Context, s *session.Session, search *string) (promotion.View, error)
	Start(ctx context.Context, s *session.Session) (promotion.View, error)
	Preview(ctx context.Context, s *session.Session) (promotion.View, error)
	Back(ctx context.Context, s *session.Session) (promotion.View, error)
	ToggleExclusion(ctx context.Context, s *session.Session, studentID int) (promotion.View, error)
	Confirm(ctx context.Context, s *session.Session) (promotion.View, error)
	Close(ctx context.Context, s *session.Session) error

	History(ctx context.Context, s *session.Session) (*promotion.HistoryBrowser, error)
	HistoryDetail(ctx context.Context, s *session.Session, id int) (*entity.PromotionDetail, error)
	CollapseDetail(ctx context.Context, s *session.Session, id int) (*promotion.HistoryBrowser, error)
	Undo(ctx context.Context, s *session.Session, id int, confirmed bool) (*promotion.HistoryBrowser, error)
}

type promotionService struct {
	api    *client.Client
	store  session.Store
	logger *zap.Logger
}

func NewPromotionService(api *client.Client, store session.Store, logger *zap.Logger) PromotionService {
	return &promotionService{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// wizardStep applies fn to the wizard of the latest stored session and saves
// the result even when fn fails, so an inline error survives to the next
// render. fn may run again if another request wrote the session meanwhile.
func (s *promotionService) wizardStep(ctx context.Context, sess *session.Session, fn func(w *promotion.Wizard) error) (promotion.View, error) {
	var (
		view  promotion.View
		opErr error
	)
	_, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		w, err := promotion.LoadWizard(fresh)
		if err != nil {
			return err
		}
		opErr = fn(w)
		view = w.View()
		return w.SaveTo(fresh)
	})
	if err != nil {
		return promotion.View{}, err
	}
	return view, mapError(opErr)
}

func (s *promotionService) Wizard(ctx context.Context, sess *session.Session, search *string) (promotion.View, error) {
	if search == nil {
		latest, err := s.store.Get(ctx, sess.ID)
		if err != nil {
			return promotion.View{}, err
		}
		w, err := promotion.LoadWizard(latest)
		if err != nil {
			return promotion.View{}, err
		}
		return w.View(), nil
	}
	return s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		w.Filter(*search)
		return nil
	})
}

func (s *promotionService) Start(ctx context.Context, sess *session.Session) (promotion.View, error) {
	return s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		w.Start()
		return nil
	})
}

// Preview fetches the candidates outside the session update; ApplyPreview
// refuses the answer if the wizard moved on while the call was running.
func (s *promotionService) Preview(ctx context.Context, sess *session.Session) (promotion.View, error) {
	view, err := s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		return w.BeginPreview()
	})
	if err != nil {
		return view, err
	}

	preview, callErr := s.api.WithToken(sess.Token).PromotionPreview(ctx)
	if callErr != nil {
		s.logger.Warn("promotion preview failed", zap.Error(callErr))
	}
	return s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		return w.ApplyPreview(preview, callErr)
	})
}

func (s *promotionService) Back(ctx context.Context, sess *session.Session) (promotion.View, error) {
	return s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		return w.Back()
	})
}

func (s *promotionService) ToggleExclusion(ctx context.Context, sess *session.Session, studentID int) (promotion.View, error) {
	return s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		return w.ToggleExclusion(studentID)
	})
}

// Confirm moves the wizard to processing in one update and sends the
// exclusions read in that same update. A second confirm, or a toggle arriving
// later, finds the wizard past the preview and is refused.
func (s *promotionService) Confirm(ctx context.Context, sess *session.Session) (promotion.View, error) {
	var excluded []int
	view, err := s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		ids, err := w.BeginConfirm()
		excluded = ids
		return err
	})
	if err != nil {
		return view, err
	}

	result, callErr := s.api.WithToken(sess.Token).ConfirmPromotion(ctx, excluded)
	view, err = s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		return w.FinishConfirm(result, callErr)
	})
	if callErr != nil {
		s.logger.Warn("promotion confirm failed", zap.Int("excluded", len(excluded)), zap.Error(callErr))
		return view, callErr
	}
	if err != nil {
		return view, err
	}

	s.logger.Info("promotion applied",
		zap.Int("by", sess.User.ID),
		zap.Int("promoted", result.PromotedCount),
		zap.Int("graduated", result.GraduatedCount),
		zap.Int("excluded", len(excluded)),
	)
	return view, nil
}

func (s *promotionService) Close(ctx context.Context, sess *session.Session) error {
	_, err := s.wizardStep(ctx, sess, func(w *promotion.Wizard) error {
		w.Close()
		return nil
	})
	return err
}

// loadHistory reads the history browser from the latest stored session.
func (s *promotionService) loadHistory(ctx context.Context, sess *session.Session) (*promotion.HistoryBrowser, error) {
	latest, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return promotion.LoadHistory(latest)
}

// historyUpdate applies fn to the history browser of the latest stored session.
func (s *promotionService) historyUpdate(ctx context.Context, sess *session.Session, fn func(h *promotion.HistoryBrowser)) (*promotion.HistoryBrowser, error) {
	var h *promotion.HistoryBrowser
	_, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		loaded, err := promotion.LoadHistory(fresh)
		if err != nil {
			return err
		}
		fn(loaded)
		h = loaded
		return loaded.SaveTo(fresh)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *promotionService) History(ctx context.Context, sess *session.Session) (*promotion.HistoryBrowser, error) {
	fetched := &promotion.HistoryBrowser{}
	if err := fetched.List(ctx, s.api.WithToken(sess.Token)); err != nil {
		return nil, err
	}
	return s.historyUpdate(ctx, sess, func(h *promotion.HistoryBrowser) {
		h.Items = fetched.Items
	})
}

func (s *promotionService) HistoryDetail(ctx context.Context, sess *session.Session, id int) (*entity.PromotionDetail, error) {
	h, err := s.loadHistory(ctx, sess)
	if err != nil {
		return nil, err
	}
	detail, err := h.Expand(ctx, s.api.WithToken(sess.Token), id)
	if err != nil {
		return nil, err
	}
	if _, err := s.historyUpdate(ctx, sess, func(h *promotion.HistoryBrowser) {
		h.Remember(id, detail)
	}); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *promotionService) CollapseDetail(ctx context.Context, sess *session.Session, id int) (*promotion.HistoryBrowser, error) {
	return s.historyUpdate(ctx, sess, func(h *promotion.HistoryBrowser) {
		h.Collapse(id)
	})
}

func (s *promotionService) Undo(ctx context.Context, sess *session.Session, id int, confirmed bool) (*promotion.HistoryBrowser, error) {
	h, err := s.loadHistory(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := h.Undo(ctx, s.api.WithToken(sess.Token), id, confirmed); err != nil {
		return nil, err
	}
	updated, err := s.historyUpdate(ctx, sess, func(fresh *promotion.HistoryBrowser) {
		fresh.Forget(id)
		fresh.Items = h.Items
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("promotion undone", zap.Int("history_id", id), zap.Int("by", sess.User.ID))
	return updated, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, promotion.ErrInvalidTransition):
		return apperror.New(http.StatusConflict, err.Error(), apperror.ErrConflict)
	case errors.Is(err, promotion.ErrNotCandidate):
		return apperror.New(http.StatusNotFound, err.Error(), apperror.ErrNotFound)
	}
	return err
}
