// Package session holds the authenticated user of one console client: the
// backend token, the user record and the state derived from them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = fmt.Errorf("session changed concurrently, try again: %w", apperror.ErrConflict)
)

type Session struct {
	ID        string                     `json:"id"`
	Token     string                     `json:"token"`
	User      *entity.User               `json:"user"`
	ExpiresAt time.Time                  `json:"expires_at"`
	Data      map[string]json.RawMessage `json:"data,omitempty"`
}

// New starts a session for user. The expiry comes from the token's exp claim,
// or now+fallback when the token carries none.
func New(token string, user *entity.User, fallback time.Duration) *Session {
	expiresAt, ok := TokenExpiry(token)
	if !ok {
		expiresAt = time.Now().Add(fallback)
	}
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
		Data:      map[string]json.RawMessage{},
	}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil && !s.Expired(time.Now())
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Put stores v under key as JSON.
func (s *Session) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if s.Data == nil {
		s.Data = map[string]json.RawMessage{}
	}
	s.Data[key] = raw
	return nil
}

// Load decodes the value under key into out and reports whether it was present.
func (s *Session) Load(key string, out any) (bool, error) {
	raw, ok := s.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) Drop(key string) {
	delete(s.Data, key)
}

// UpdateFunc changes a session in place. It may run more than once for a
// single Update, so it must not touch anything but s.
type UpdateFunc func(s *Session) error

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	// Save writes s as a whole; it is meant for a session that was just created.
	Save(ctx context.Context, s *Session) error
	// Update applies fn to the latest stored copy and writes the result only
	// if nobody wrote the session in between. An error from fn aborts the write.
	Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error)
	Delete(ctx context.Context, id string) error
}
