package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/student/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

// DetailKey holds the id of the student whose detail sidebar is open.
const DetailKey = "detail:student"

type StudentService interface {
	List(ctx context.Context, s *session.Session, filter dto.StudentFilter) ([]entity.Student, error)
	Get(ctx context.Context, s *session.Session, id int) (*entity.Student, error)
	CloseDetail(ctx context.Context, s *session.Session) error
	Create(ctx context.Context, s *session.Session, input dto.CreateStudentInput) (*entity.User, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.StudentInput) (*entity.User, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
	UploadProfilePicture(ctx context.Context, s *session.Session, id int, file client.File) (*entity.User, error)
}

type studentService struct {
	api    *client.Client
	store  session.Store
	logger *zap.Logger
}

func NewStudentService(api *client.Client, store session.Store, logger *zap.Logger) StudentService {
	return &studentService{
		api:    api,
		store:  store,
		logger: logger,
	}
}

func (s *studentService) List(ctx context.Context, sess *session.Session, filter dto.StudentFilter) ([]entity.Student, error) {
	if fields := forms.Validate(filter); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).ListStudents(ctx, filter.UserFilter())
}

// Get fetches one student and remembers it as the open detail.
func (s *studentService) Get(ctx context.Context, sess *session.Session, id int) (*entity.Student, error) {
	student, err := s.api.WithToken(sess.Token).GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		return fresh.Put(DetailKey, id)
	}); err != nil {
		s.logger.Warn("failed to save open student detail", zap.Int("student_id", id), zap.Error(err))
	}
	return student, nil
}

func (s *studentService) CloseDetail(ctx context.Context, sess *session.Session) error {
	_, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		fresh.Drop(DetailKey)
		return nil
	})
	return err
}

func (s *studentService) Create(ctx context.Context, sess *session.Session, input dto.CreateStudentInput) (*entity.User, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).Register(ctx, dto.RegisterPayload{
		StudentInput: input.StudentInput,
		Role:         entity.RoleStudent,
	})
}

func (s *studentService) Update(ctx context.Context, sess *session.Session, id int, input dto.StudentInput) (*entity.User, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).UpdateUser(ctx, id, input)
}

// Delete removes the student and closes its detail if it was the open one.
func (s *studentService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.api.WithToken(sess.Token).DeleteUser(ctx, id); err != nil {
		return err
	}

	if _, err := s.store.Update(ctx, sess.ID, func(fresh *session.Session) error {
		var open int
		if ok, _ := fresh.Load(DetailKey, &open); ok && open == id {
			fresh.Drop(DetailKey)
		}
		return nil
	}); err != nil {
		s.logger.Warn("failed to clear student detail", zap.Int("student_id", id), zap.Error(err))
	}
	s.logger.Info("student deleted", zap.Int("student_id", id), zap.Int("by", sess.User.ID))
	return nil
}

func (s *studentService) UploadProfilePicture(ctx context.Context, sess *session.Session, id int, file client.File) (*entity.User, error) {
	if err := forms.CheckUpload(file, forms.MaxProfilePictureSize, forms.ImageTypes); err != nil {
		return nil, err
	}
	return s.api.WithToken(sess.Token).UploadProfilePicture(ctx, id, file)
}
