package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/classsession/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type SessionService interface {
	List(ctx context.Context, s *session.Session, filter dto.SessionFilter) ([]entity.ClassSession, error)
	Create(ctx context.Context, s *session.Session, input dto.SessionInput) (*entity.ClassSession, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.SessionInput) (*entity.ClassSession, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
	NextSessionNo(ctx context.Context, s *session.Session, subjectID int) (int, error)
}

type sessionService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewSessionService(api *client.Client, logger *zap.Logger) SessionService {
	return &sessionService{api: api, logger: logger}
}

// List returns a subject's sessions ordered by session number, or every
// session when no subject is given.
func (s *sessionService) List(ctx context.Context, sess *session.Session, filter dto.SessionFilter) ([]entity.ClassSession, error) {
	api := s.api.WithToken(sess.Token)
	if filter.SubjectID == nil {
		return api.ListSessions(ctx)
	}
	sessions, err := api.ListSessionsBySubject(ctx, *filter.SubjectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionNo < sessions[j].SessionNo
	})
	return sessions, nil
}

// NextSessionNo proposes the number for a new session of subjectID.
func (s *sessionService) NextSessionNo(ctx context.Context, sess *session.Session, subjectID int) (int, error) {
	sessions, err := s.api.WithToken(sess.Token).ListSessionsBySubject(ctx, subjectID)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, cs := range sessions {
		if cs.SessionNo >= next {
			next = cs.SessionNo + 1
		}
	}
	return next, nil
}

func (s *sessionService) Create(ctx context.Context, sess *session.Session, input dto.SessionInput) (*entity.ClassSession, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).CreateSession(ctx, input)
}

func (s *sessionService) Update(ctx context.Context, sess *session.Session, id int, input dto.SessionInput) (*entity.ClassSession, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).UpdateSession(ctx, id, input)
}

func (s *sessionService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteSession(ctx, id); err != nil {
		return err
	}
	s.logger.Info("class session deleted", zap.Int("session_id", id), zap.Int("by", sess.User.ID))
	return nil
}
