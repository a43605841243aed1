package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/class/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type ClassService interface {
	List(ctx context.Context, s *session.Session, filter dto.ClassFilter) ([]entity.Class, error)
	Get(ctx context.Context, s *session.Session, id int) (*entity.Class, error)
	Create(ctx context.Context, s *session.Session, input dto.ClassInput) (*entity.Class, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.ClassInput) (*entity.Class, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
}

type classService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewClassService(api *client.Client, logger *zap.Logger) ClassService {
	return &classService{api: api, logger: logger}
}

func (s *classService) List(ctx context.Context, sess *session.Session, filter dto.ClassFilter) ([]entity.Class, error) {
	return s.api.WithToken(sess.Token).ListClasses(ctx, filter.RegionID)
}

func (s *classService) Get(ctx context.Context, sess *session.Session, id int) (*entity.Class, error) {
	return s.api.WithToken(sess.Token).GetClass(ctx, id)
}

func (s *classService) Create(ctx context.Context, sess *session.Session, input dto.ClassInput) (*entity.Class, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).CreateClass(ctx, input)
}

func (s *classService) Update(ctx context.Context, sess *session.Session, id int, input dto.ClassInput) (*entity.Class, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).UpdateClass(ctx, id, input)
}

func (s *classService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteClass(ctx, id); err != nil {
		return err
	}
	s.logger.Info("class deleted", zap.Int("class_id", id), zap.Int("by", sess.User.ID))
	return nil
}
