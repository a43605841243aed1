package service

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/enrollment/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type EnrollmentService interface {
	List(ctx context.Context, s *session.Session, filter dto.EnrollmentFilter) ([]entity.Enrollment, error)
	Create(ctx context.Context, s *session.Session, input dto.EnrollmentInput) (*entity.Enrollment, error)
	Delete(ctx context.Context, s *session.Session, id int) error
}

type enrollmentService struct {
	api *client.Client
}

func NewEnrollmentService(api *client.Client) EnrollmentService {
	return &enrollmentService{api: api}
}

func (s *enrollmentService) List(ctx context.Context, sess *session.Session, filter dto.EnrollmentFilter) ([]entity.Enrollment, error) {
	return s.api.WithToken(sess.Token).ListEnrollments(ctx, filter.StudentID, filter.SubjectID)
}

func (s *enrollmentService) Create(ctx context.Context, sess *session.Session, input dto.EnrollmentInput) (*entity.Enrollment, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).CreateEnrollment(ctx, input)
}

func (s *enrollmentService) Delete(ctx context.Context, sess *session.Session, id int) error {
	return s.api.WithToken(sess.Token).DeleteEnrollment(ctx, id)
}
