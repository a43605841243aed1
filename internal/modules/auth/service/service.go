package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear"
	"lemuel.com/eduspaceadmin/internal/modules/auth/dto"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, s *session.Session) (*dto.AuthResponse, error)
}

type authService struct {
	api      *client.Client
	store    session.Store
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(api *client.Client, store session.Store, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		api:      api,
		store:    store,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if fields := forms.Validate(input); fields != nil {
		return nil, apperror.Validation(fields)
	}

	creds := client.Credentials{Email: input.Email, Password: input.Password}
	var (
		tok *client.TokenResponse
		err error
	)
	if input.Admin {
		tok, err = s.api.AdminLogin(ctx, creds)
	} else {
		tok, err = s.api.Login(ctx, creds)
	}
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			return nil, apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, apperror.New(http.StatusBadGateway, "backend returned no access token", apperror.ErrUpstream)
	}

	authed := s.api.WithToken(tok.AccessToken)
	user := tok.User
	if user == nil {
		user, err = authed.Me(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch current user: %w", err)
		}
	}

	sess := session.New(tok.AccessToken, user, s.tokenTTL)
	yc := academicyear.New(user)
	yc.Load(ctx, authed, s.logger)
	if err := yc.SaveTo(sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("user logged in",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Time("expires_at", sess.ExpiresAt),
	)
	return buildResponse(sess, yc), nil
}

// Logout drops the session and everything derived from it.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, sess *session.Session) (*dto.AuthResponse, error) {
	yc, err := academicyear.FromSession(sess)
	if err != nil {
		return nil, err
	}
	return buildResponse(sess, yc), nil
}

func buildResponse(sess *session.Session, yc *academicyear.YearContext) *dto.AuthResponse {
	return &dto.AuthResponse{
		SessionID:  sess.ID,
		ExpiresAt:  sess.ExpiresAt,
		User:       sess.User,
		Context:    yc.View(),
		Navigation: entity.NavigationFor(sess.User.Role),
	}
}
