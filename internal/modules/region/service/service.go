package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/modules/region/dto"
	"lemuel.com/eduspaceadmin/internal/session"
)

type RegionService interface {
	Regions(ctx context.Context, s *session.Session) dto.Options[entity.Region]
	ClassesByRegion(ctx context.Context, s *session.Session, regionID int) dto.Options[entity.Class]
	AvailableTeachers(ctx context.Context, s *session.Session) dto.Options[entity.Teacher]
	AvailableUsers(ctx context.Context, s *session.Session, filter dto.AvailableUsersFilter) dto.Options[entity.User]
	FormOptions(ctx context.Context, s *session.Session, filter dto.FormOptionsFilter) dto.FormOptions
}

type regionService struct {
	api    *client.Client
	logger *zap.Logger
}

func NewRegionService(api *client.Client, logger *zap.Logger) RegionService {
	return &regionService{api: api, logger: logger}
}

func options[T any](log *zap.Logger, what string, data []T, err error) dto.Options[T] {
	if err != nil {
		log.Warn("failed to load form options", zap.String("list", what), zap.Error(err))
		return dto.Options[T]{Data: []T{}, Error: client.ErrorMessage(err)}
	}
	if data == nil {
		data = []T{}
	}
	return dto.Options[T]{Data: data}
}

func (s *regionService) Regions(ctx context.Context, sess *session.Session) dto.Options[entity.Region] {
	regions, err := s.api.WithToken(sess.Token).ListRegions(ctx)
	return options(s.logger, "regions", regions, err)
}

func (s *regionService) ClassesByRegion(ctx context.Context, sess *session.Session, regionID int) dto.Options[entity.Class] {
	classes, err := s.api.WithToken(sess.Token).ListClasses(ctx, &regionID)
	return options(s.logger, "classes", classes, err)
}

func (s *regionService) AvailableTeachers(ctx context.Context, sess *session.Session) dto.Options[entity.Teacher] {
	teachers, err := s.api.WithToken(sess.Token).ListTeachers(ctx, entity.UserFilter{})
	return options(s.logger, "teachers", teachers, err)
}

func (s *regionService) AvailableUsers(ctx context.Context, sess *session.Session, filter dto.AvailableUsersFilter) dto.Options[entity.User] {
	users, err := s.api.WithToken(sess.Token).ListUsers(ctx, entity.UserFilter{
		Role:     entity.Role(filter.Role),
		RegionID: filter.RegionID,
		ClassID:  filter.ClassID,
		Search:   filter.Search,
	})
	return options(s.logger, "users", users, err)
}

// FormOptions loads every list concurrently. Classes are only loaded once a
// region is chosen; without one the list is empty.
func (s *regionService) FormOptions(ctx context.Context, sess *session.Session, filter dto.FormOptionsFilter) dto.FormOptions {
	out := dto.FormOptions{Classes: dto.Options[entity.Class]{Data: []entity.Class{}}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Regions = s.Regions(ctx, sess)
	}()
	go func() {
		defer wg.Done()
		out.Teachers = s.AvailableTeachers(ctx, sess)
	}()
	if filter.RegionID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Classes = s.ClassesByRegion(ctx, sess, *filter.RegionID)
		}()
	}
	wg.Wait()

	return out
}
