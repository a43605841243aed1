// Package forms holds the draft state of one add/edit form: validation runs
// before the submit callback, and closing always discards the draft.
package forms

import (
	"context"
	"errors"
	"sync"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/pkg/apperror"
	"lemuel.com/eduspaceadmin/pkg/validator"
)

var (
	ErrClosed  = errors.New("form is not open")
	ErrInvalid = errors.New("form has invalid fields")
	ErrBusy    = errors.New("form is already submitting")
)

type Mode int

const (
	ModeAdd Mode = iota + 1
	ModeEdit
)

type Modal[T any] struct {
	mu           sync.Mutex
	open         bool
	mode         Mode
	draft        T
	errors       map[string]string
	generalError string
	loading      bool
}

// Open shows the form. A nil initial opens a blank add form; otherwise the
// draft is a copy of initial.
func (m *Modal[T]) Open(initial *T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	m.draft = zero
	m.mode = ModeAdd
	if initial != nil {
		m.draft = *initial
		m.mode = ModeEdit
	}
	m.open = true
	m.errors = nil
	m.generalError = ""
	m.loading = false
}

// Close hides the form and discards the draft, so a reopen never sees it.
func (m *Modal[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	m.open = false
	m.mode = 0
	m.draft = zero
	m.errors = nil
	m.generalError = ""
	m.loading = false
}

func (m *Modal[T]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal[T]) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Modal[T]) Draft() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Edit applies fn to the draft, as a controlled input would.
func (m *Modal[T]) Edit(fn func(*T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		fn(&m.draft)
	}
}

func (m *Modal[T]) Errors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

func (m *Modal[T]) GeneralError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generalError
}

func (m *Modal[T]) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Submit validates the draft and, when it is valid, hands it to fn. Success
// closes the form; a backend field error lands in Errors, anything else in
// GeneralError, and the form stays open.
func (m *Modal[T]) Submit(ctx context.Context, fn func(context.Context, T) error) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.loading {
		m.mu.Unlock()
		return ErrBusy
	}
	draft := m.draft
	if fields := Validate(draft); fields != nil {
		m.errors = fields
		m.mu.Unlock()
		return ErrInvalid
	}
	m.errors = nil
	m.generalError = ""
	m.loading = true
	m.mu.Unlock()

	err := fn(ctx, draft)

	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()

	if err != nil {
		m.mu.Lock()
		if fields := FieldErrors(err); fields != nil {
			m.errors = fields
		} else {
			m.generalError = client.ErrorMessage(err)
		}
		m.mu.Unlock()
		return err
	}
	m.Close()
	return nil
}

// Validate runs tag and field-level validation on v.
func Validate(v any) map[string]string {
	return validator.Struct(v)
}

// FieldErrors extracts a field-keyed map from a console or backend validation error.
func FieldErrors(err error) map[string]string {
	if fields, ok := apperror.FieldsOf(err); ok {
		return fields
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.FieldErrors()
	}
	return nil
}
