package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

type classDraft struct {
	Name  string `json:"name" validate:"required,notblank"`
	Grade int    `json:"grade" validate:"required,gte=1,lte=12"`
}

func TestModal_OpenAddAndEdit(t *testing.T) {
	var m Modal[classDraft]
	assert.False(t, m.IsOpen())

	m.Open(nil)
	assert.True(t, m.IsOpen())
	assert.Equal(t, ModeAdd, m.Mode())
	assert.Equal(t, classDraft{}, m.Draft())

	initial := classDraft{Name: "7A", Grade: 7}
	m.Open(&initial)
	assert.Equal(t, ModeEdit, m.Mode())
	m.Edit(func(d *classDraft) { d.Name = "7B" })
	assert.Equal(t, "7B", m.Draft().Name)
	assert.Equal(t, "7A", initial.Name, "editing the draft must not touch the record")
}

func TestModal_CloseDiscardsDraft(t *testing.T) {
	var m Modal[classDraft]
	m.Open(nil)
	m.Edit(func(d *classDraft) { d.Name = "half typed" })
	_ = m.Submit(context.Background(), func(context.Context, classDraft) error { return nil })
	require.NotEmpty(t, m.Errors())

	m.Close()
	assert.False(t, m.IsOpen())

	m.Open(nil)
	assert.Equal(t, classDraft{}, m.Draft())
	assert.Empty(t, m.Errors())
	assert.Empty(t, m.GeneralError())

	m.Close()
	m.Edit(func(d *classDraft) { d.Name = "ignored" })
	assert.Equal(t, classDraft{}, m.Draft())
}

func TestModal_SubmitInvalidSkipsCallback(t *testing.T) {
	var m Modal[classDraft]
	m.Open(&classDraft{Name: "  ", Grade: 13})

	called := false
	err := m.Submit(context.Background(), func(context.Context, classDraft) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	assert.Contains(t, m.Errors(), "name")
	assert.Contains(t, m.Errors(), "grade")
	assert.True(t, m.IsOpen())
}

func TestModal_SubmitSuccessCloses(t *testing.T) {
	var m Modal[classDraft]
	m.Open(&classDraft{Name: "7A", Grade: 7})

	var got classDraft
	err := m.Submit(context.Background(), func(_ context.Context, d classDraft) error {
		got = d
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "7A", got.Name)
	assert.False(t, m.IsOpen())
	assert.False(t, m.Loading())
}

func TestModal_SubmitFailureKeepsForm(t *testing.T) {
	var m Modal[classDraft]
	m.Open(&classDraft{Name: "7A", Grade: 7})

	err := m.Submit(context.Background(), func(context.Context, classDraft) error {
		return apperror.Validation(map[string]string{"name": "class name already exists"})
	})
	require.Error(t, err)
	assert.True(t, m.IsOpen())
	assert.Equal(t, "class name already exists", m.Errors()["name"])

	err = m.Submit(context.Background(), func(context.Context, classDraft) error {
		return &client.APIError{Status: 500, Detail: []byte(`"database is down"`)}
	})
	require.Error(t, err)
	assert.Equal(t, "database is down", m.GeneralError())
	assert.Empty(t, m.Errors())
	assert.Equal(t, "7A", m.Draft().Name)
}

func TestModal_SubmitClosed(t *testing.T) {
	var m Modal[classDraft]
	err := m.Submit(context.Background(), func(context.Context, classDraft) error { return errors.New("unreachable") })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFieldErrors(t *testing.T) {
	apiErr := &client.APIError{Status: 422, Detail: []byte(`[{"loc":["body","nis"],"msg":"Value error, NIS already used"}]`)}
	assert.Equal(t, map[string]string{"nis": "NIS already used"}, FieldErrors(apiErr))
	assert.Nil(t, FieldErrors(errors.New("boom")))
}
