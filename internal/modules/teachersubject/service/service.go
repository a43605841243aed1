package service

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/teachersubject/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type TeacherSubjectService interface {
	List(ctx context.Context, s *session.Session, filter dto.AssignmentFilter) ([]entity.TeacherSubject, error)
	Assign(ctx context.Context, s *session.Session, input dto.AssignInput) (*entity.TeacherSubject, error)
	Unassign(ctx context.Context, s *session.Session, id int) error
}

type teacherSubjectService struct {
	api *client.Client
}

func NewTeacherSubjectService(api *client.Client) TeacherSubjectService {
	return &teacherSubjectService{api: api}
}

func (s *teacherSubjectService) List(ctx context.Context, sess *session.Session, filter dto.AssignmentFilter) ([]entity.TeacherSubject, error) {
	return s.api.WithToken(sess.Token).ListTeacherSubjects(ctx, filter.TeacherID)
}

func (s *teacherSubjectService) Assign(ctx context.Context, sess *session.Session, input dto.AssignInput) (*entity.TeacherSubject, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).AssignTeacherSubject(ctx, input)
}

func (s *teacherSubjectService) Unassign(ctx context.Context, sess *session.Session, id int) error {
	return s.api.WithToken(sess.Token).UnassignTeacherSubject(ctx, id)
}
