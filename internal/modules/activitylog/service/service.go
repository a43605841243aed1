package service

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/activitylog/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type LogService interface {
	LoginLogs(ctx context.Context, s *session.Session, filter dto.LogFilter) ([]entity.LoginLog, error)
	ActivityLogs(ctx context.Context, s *session.Session, filter dto.LogFilter) ([]entity.ActivityLog, error)
}

type logService struct {
	api *client.Client
}

func NewLogService(api *client.Client) LogService {
	return &logService{api: api}
}

func (s *logService) LoginLogs(ctx context.Context, sess *session.Session, filter dto.LogFilter) ([]entity.LoginLog, error) {
	if fields := forms.Validate(filter); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).LoginLogs(ctx, filter.Entity())
}

func (s *logService) ActivityLogs(ctx context.Context, sess *session.Session, filter dto.LogFilter) ([]entity.ActivityLog, error) {
	if fields := forms.Validate(filter); fields != nil {
		return nil, apperror.Validation(fields)
	}
	return s.api.WithToken(sess.Token).ActivityLogs(ctx, filter.Entity())
}
