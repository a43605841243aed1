package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/subject/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type SubjectService interface {
	List(ctx context.Context, s *session.Session, filter dto.SubjectFilter) ([]entity.Subject, error)
	Get(ctx context.Context, s *session.Session, id int) (*entity.Subject, error)
	Create(ctx context.Context, s *session.Session, input dto.SubjectInput) (*entity.Subject, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.SubjectInput) (*entity.Subject, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
}

type subjectService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewSubjectService(api *client.Client, logger *zap.Logger) SubjectService {
	return &subjectService{api: api, logger: logger}
}

func (s *subjectService) List(ctx context.Context, sess *session.Session, filter dto.SubjectFilter) ([]entity.Subject, error) {
	return s.api.WithToken(sess.Token).ListSubjects(ctx, filter.ClassID)
}

func (s *subjectService) Get(ctx context.Context, sess *session.Session, id int) (*entity.Subject, error) {
	return s.api.WithToken(sess.Token).GetSubject(ctx, id)
}

func (s *subjectService) Create(ctx context.Context, sess *session.Session, input dto.SubjectInput) (*entity.Subject, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).CreateSubject(ctx, input)
}

func (s *subjectService) Update(ctx context.Context, sess *session.Session, id int, input dto.SubjectInput) (*entity.Subject, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).UpdateSubject(ctx, id, input)
}

func (s *subjectService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteSubject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("subject deleted", zap.Int("subject_id", id), zap.Int("by", sess.User.ID))
	return nil
}
