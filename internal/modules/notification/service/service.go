package service

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/notification/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type NotificationService interface {
	List(ctx context.Context, s *session.Session) ([]entity.Notification, error)
	Create(ctx context.Context, s *session.Session, input dto.NotificationInput) (*dto.NotificationResponse, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.NotificationInput) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
	UploadImage(ctx context.Context, s *session.Session, file client.File) (string, error)
}

type notificationService struct {
	api       *client.Client
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

func NewNotificationService(api *client.Client, logger *zap.Logger) NotificationService {
	return &notificationService{
		api:       api,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

func (s *notificationService) List(ctx context.Context, sess *session.Session) ([]entity.Notification, error) {
	return s.api.WithToken(sess.Token).ListNotifications(ctx)
}

func (s *notificationService) Create(ctx context.Context, sess *session.Session, input dto.NotificationInput) (*dto.NotificationResponse, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	api := s.api.WithToken(sess.Token)

	n, err := api.CreateNotification(ctx, input.Payload(s.sanitizer.Sanitize(input.Description)))
	if err != nil {
		return nil, err
	}
	return s.fanOut(ctx, api, n, input.Recipients), nil
}

func (s *notificationService) Update(ctx context.Context, sess *session.Session, id int, input dto.NotificationInput) (*dto.NotificationResponse, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	api := s.api.WithToken(sess.Token)

	n, err := api.UpdateNotification(ctx, id, input.Payload(s.sanitizer.Sanitize(input.Description)))
	if err != nil {
		return nil, err
	}
	return s.fanOut(ctx, api, n, input.Recipients), nil
}

// fanOut assigns a saved notification to its recipients. The notification
// already exists at this point, so a failure is reported next to it.
func (s *notificationService) fanOut(ctx context.Context, api *client.Client, n *entity.Notification, r dto.Recipients) *dto.NotificationResponse {
	res := &dto.NotificationResponse{Notification: n}

	var err error
	switch r.Mode {
	case entity.RecipientAll:
		err = api.AssignNotificationByRole(ctx, n.ID, string(entity.RecipientAll))
	case entity.RecipientRegion:
		err = api.AssignNotificationByRegion(ctx, n.ID, *r.RegionID)
	case entity.RecipientClass:
		err = api.AssignNotificationByClass(ctx, n.ID, *r.ClassID)
	case entity.RecipientSpecific:
		err = api.AssignNotification(ctx, n.ID, r.UserIDs)
	default:
		return res
	}
	if err != nil {
		s.logger.Warn("failed to assign notification",
			zap.Int("notification_id", n.ID),
			zap.String("mode", string(r.Mode)),
			zap.Error(err),
		)
		res.AssignError = fmt.Sprintf("notification saved but not delivered: %s", client.ErrorMessage(err))
	}
	return res
}

func (s *notificationService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	return s.api.WithToken(sess.Token).DeleteNotification(ctx, id)
}

func (s *notificationService) UploadImage(ctx context.Context, sess *session.Session, file client.File) (string, error) {
	if err := forms.CheckUpload(file, forms.MaxImageSize, forms.ImageTypes); err != nil {
		return "", err
	}
	return s.api.WithToken(sess.Token).UploadNotificationImage(ctx, file)
}
