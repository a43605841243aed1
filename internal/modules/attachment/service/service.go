package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear"
	"lemuel.com/eduspaceadmin/internal/modules/attachment/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type AttachmentService interface {
	List(ctx context.Context, s *session.Session, sessionID int) ([]entity.Attachment, error)
	Upload(ctx context.Context, s *session.Session, sessionID int, input dto.AttachmentInput, file client.File) (*entity.Attachment, error)
	Delete(ctx context.Context, s *session.Session, id int) error
}

type attachmentService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewAttachmentService(api *client.Client, logger *zap.Logger) AttachmentService {
	return &attachmentService{api: api, logger: logger}
}

func (s *attachmentService) List(ctx context.Context, sess *session.Session, sessionID int) ([]entity.Attachment, error) {
	return s.api.WithToken(sess.Token).ListAttachments(ctx, sessionID)
}

func (s *attachmentService) Upload(ctx context.Context, sess *session.Session, sessionID int, input dto.AttachmentInput, file client.File) (*entity.Attachment, error) {
	if err := requireLive(sess); err != nil {
		return nil, err
	}
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	if err := forms.CheckUpload(file, forms.MaxAttachmentSize, forms.AttachmentTypes); err != nil {
		return nil, err
	}
	return s.api.WithToken(sess.Token).CreateAttachment(ctx, sessionID, input.Name, input.Type, file)
}

func (s *attachmentService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := requireLive(sess); err != nil {
		return err
	}
	return s.api.WithToken(sess.Token).DeleteAttachment(ctx, id)
}

// requireLive blocks attachment changes while a past year is being viewed.
func requireLive(sess *session.Session) error {
	yc, err := academicyear.FromSession(sess)
	if err != nil {
		return err
	}
	return yc.RequireLive()
}
