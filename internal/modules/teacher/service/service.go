package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/teacher/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type TeacherService interface {
	List(ctx context.Context, s *session.Session, filter dto.TeacherFilter) ([]entity.Teacher, error)
	Get(ctx context.Context, s *session.Session, id int) (*entity.Teacher, error)
	Create(ctx context.Context, s *session.Session, input dto.CreateTeacherInput) (*entity.User, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.TeacherInput) (*entity.User, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
	UploadProfilePicture(ctx context.Context, s *session.Session, id int, file client.File) (*entity.User, error)
}

type teacherService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewTeacherService(api *client.Client, logger *zap.Logger) TeacherService {
	return &teacherService{api: api, logger: logger}
}

func (s *teacherService) List(ctx context.Context, sess *session.Session, filter dto.TeacherFilter) ([]entity.Teacher, error) {
	if fields := forms.Validate(filter); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).ListTeachers(ctx, entity.UserFilter{
		RegionID: filter.RegionID,
		Search:   filter.Search,
		Skip:     filter.Skip,
		Limit:    filter.Limit,
	})
}

func (s *teacherService) Get(ctx context.Context, sess *session.Session, id int) (*entity.Teacher, error) {
	return s.api.WithToken(sess.Token).GetTeacher(ctx, id)
}

func (s *teacherService) Create(ctx context.Context, sess *session.Session, input dto.CreateTeacherInput) (*entity.User, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).Register(ctx, dto.RegisterPayload{
		TeacherInput: input.TeacherInput,
		Role:         entity.RoleTeacher,
	})
}

func (s *teacherService) Update(ctx context.Context, sess *session.Session, id int, input dto.TeacherInput) (*entity.User, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).UpdateUser(ctx, id, input)
}

func (s *teacherService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("teacher deleted", zap.Int("teacher_id", id), zap.Int("by", sess.User.ID))
	return nil
}

func (s *teacherService) UploadProfilePicture(ctx context.Context, sess *session.Session, id int, file client.File) (*entity.User, error) {
	if err := forms.CheckUpload(file, forms.MaxProfilePictureSize, forms.ImageTypes); err != nil {
		return nil, err
	}
	return s.api.WithToken(sess.Token).UploadProfilePicture(ctx, id, file)
}
