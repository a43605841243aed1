package service

import (
	"context"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/banner/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type BannerService interface {
	List(ctx context.Context, s *session.Session) ([]entity.Banner, error)
	Create(ctx context.Context, s *session.Session, input dto.BannerInput, image client.File) (*entity.Banner, error)
	Update(ctx context.Context, s *session.Session, id int, input dto.BannerInput, image client.File) (*entity.Banner, error)
	Delete(ctx context.Context, s *session.Session, id int, confirmed bool) error
}

type bannerService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewBannerService(api *client.Client, logger *zap.Logger) BannerService {
	return &bannerService{api: api, logger: logger}
}

func (s *bannerService) List(ctx context.Context, sess *session.Session) ([]entity.Banner, error) {
	return s.api.WithToken(sess.Token).ListBanners(ctx)
}

// Create needs an image; Update keeps the stored one when none is sent.
func (s *bannerService) Create(ctx context.Context, sess *session.Session, input dto.BannerInput, image client.File) (*entity.Banner, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	if err := forms.CheckUpload(image, forms.MaxImageSize, forms.ImageTypes); err != nil {
		return nil, err
	}
	return s.api.WithToken(sess.Token).CreateBanner(ctx, input.Fields(), image)
}

func (s *bannerService) Update(ctx context.Context, sess *session.Session, id int, input dto.BannerInput, image client.File) (*entity.Banner, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}
	if image.Reader != nil {
		if err := forms.CheckUpload(image, forms.MaxImageSize, forms.ImageTypes); err != nil {
			return nil, err
		}
	}
	return s.api.WithToken(sess.Token).UpdateBanner(ctx, id, input.Fields(), image)
}

func (s *bannerService) Delete(ctx context.Context, sess *session.Session, id int, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	return s.api.WithToken(sess.Token).DeleteBanner(ctx, id)
}
