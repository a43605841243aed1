package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear"
	"lemuel.com/eduspaceadmin/internal/modules/submission/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type SubmissionService interface {
	List(ctx context.Context, s *session.Session, sessionID int) ([]entity.Submission, error)
	Upload(ctx context.Context, s *session.Session, sessionID int, file client.File) (*entity.Submission, error)
	Grade(ctx context.Context, s *session.Session, id int, input dto.GradeInput) (*entity.Submission, error)
}

type submissionService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewSubmissionService(api *client.Client, logger *zap.Logger) SubmissionService {
	return &submissionService{api: api, logger: logger}
}

func (s *submissionService) List(ctx context.Context, sess *session.Session, sessionID int) ([]entity.Submission, error) {
	return s.api.WithToken(sess.Token).ListSubmissions(ctx, sessionID)
}

// Upload hands in the student's work. Past years are read-only.
func (s *submissionService) Upload(ctx context.Context, sess *session.Session, sessionID int, file client.File) (*entity.Submission, error) {
	yc, err := academicyear.FromSession(sess)
	if err != nil {
		return nil, err
	}
	if err := yc.RequireLive(); err != nil {
		return nil, err
	}
	if err := forms.CheckUpload(file, forms.MaxAttachmentSize, forms.AttachmentTypes); err != nil {
		return nil, err
	}
	return s.api.WithToken(sess.Token).UploadSubmission(ctx, sessionID, file)
}

func (s *submissionService) Grade(ctx context.Context, sess *session.Session, id int, input dto.GradeInput) (*entity.Submission, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	submission, err := s.api.WithToken(sess.Token).GradeSubmission(ctx, id, client.GradeRequest{
		Grade:    *input.Grade,
		Feedback: input.Feedback,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("submission graded", zap.Int("submission_id", id), zap.Float64("grade", *input.Grade))
	return submission, nil
}
