package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type AcademicYearService interface {
	Context(ctx context.Context, s *session.Session) (*academicyear.YearContext, error)
	SelectYear(ctx context.Context, s *session.Session, raw string) (*academicyear.YearContext, error)
	List(ctx context.Context, s *session.Session) ([]entity.AcademicYear, error)
	Create(ctx context.Context, s *session.Session, input dto.AcademicYearInput) (*entity.AcademicYear, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.AcademicYearInput) (*entity.AcademicYear, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
	SetCurrent(ctx context.Context, s *session.Session, id int) (*entity.AcademicYear, error)
	Snapshot(ctx context.Context, s *session.Session, input dto.SnapshotRequest) (*client.SnapshotResult, error)
}

type academicYearService struct {
	api    *client.Client
	store  session.Store
	logger *zap.Logger
}

func NewAcademicYearService(api *client.Client, store session.Store, logger *zap.Logger) AcademicYearService {
	return &academicYearService{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Context returns the session's year context, loading it on first use.
func (s *academicYearService) Context(ctx context.Context, sess *session.Session) (*academicyear.YearContext, error) {
	yc, err := academicyear.FromSession(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to restore year context: %w", err)
	}
	if yc.Loaded {
		return yc, nil
	}

	yc.Load(ctx, s.api.WithToken(sess.Token), s.logger)
	return s.updateContext(ctx, sess, yc, nil)
}

func (s *academicYearService) SelectYear(ctx context.Context, sess *session.Session, raw string) (*academicyear.YearContext, error) {
	loaded, err := s.Context(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.updateContext(ctx, sess, loaded, func(yc *academicyear.YearContext) error {
		return yc.SelectYearParam(raw)
	})
}

func (s *academicYearService) List(ctx context.Context, sess *session.Session) ([]entity.AcademicYear, error) {
	return s.api.WithToken(sess.Token).ListAcademicYears(ctx)
}

func (s *academicYearService) Create(ctx context.Context, sess *session.Session, input dto.AcademicYearInput) (*entity.AcademicYear, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	year, err := s.api.WithToken(sess.Token).CreateAcademicYear(ctx, input)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, sess)
	return year, nil
}

func (s *academicYearService) Update(ctx context.Context, sess *session.Session, id int, input dto.AcademicYearInput) (*entity.AcademicYear, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	year, err := s.api.WithToken(sess.Token).UpdateAcademicYear(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, sess)
	return year, nil
}

func (s *academicYearService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteAcademicYear(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, sess)
	return nil
}

func (s *academicYearService) SetCurrent(ctx context.Context, sess *session.Session, id int) (*entity.AcademicYear, error) {
	year, err := s.api.WithToken(sess.Token).SetCurrentAcademicYear(ctx, id)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, sess)
	return year, nil
}

func (s *academicYearService) Snapshot(ctx context.Context, sess *session.Session, input dto.SnapshotRequest) (*client.SnapshotResult, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).SnapshotAcademicYear(ctx, input.AcademicYearID)
}

// refresh keeps the session's year list in step with a mutation. Failures only
// leave the cached list stale, so they are logged and swallowed.
func (s *academicYearService) refresh(ctx context.Context, sess *session.Session) {
	yc, err := academicyear.FromSession(sess)
	if err != nil || !yc.Loaded {
		return
	}
	years, err := s.api.WithToken(sess.Token).ListAcademicYears(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh academic years", zap.Error(err))
		return
	}
	if _, err := s.updateContext(ctx, sess, nil, func(yc *academicyear.YearContext) error {
		if yc.Loaded {
			yc.SetYears(years)
		}
		return nil
	}); err != nil {
		s.logger.Warn("failed to save refreshed year context", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// updateContext applies fn to the year context of the latest stored session.
// base stands in when that session has not loaded its context yet.
func (s *academicYearService) updateContext(ctx context.Context, sess *session.Session, base *academicyear.YearContext, fn func(yc *academicyear.YearContext) error) (*academicyear.YearContext, error) {
	var out *academicyear.YearContext
	_, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		yc, err := academicyear.FromSession(fresh)
		if err != nil {
			return err
		}
		if !yc.Loaded && base != nil {
			cp := *base
			yc = &cp
		}
		if fn != nil {
			if err := fn(yc); err != nil {
				return err
			}
		}
		out = yc
		return yc.SaveTo(fresh)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// YearParam renders a select-year request value as the string SelectYear takes.
func YearParam(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.Itoa(int(id))
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
