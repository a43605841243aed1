package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists a single session as a JSON file, the CLI's counterpart of
// the browser's local storage. The id argument is ignored.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, _ string) (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Expired(time.Now()) {
		_ = os.Remove(f.path)
		return nil, ErrNotFound
	}
	return &s, nil
}

func (f *FileStore) Save(_ context.Context, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

// Update is a plain read-modify-write: only one CLI process uses the file.
func (f *FileStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	s, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := f.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *FileStore) Delete(_ context.Context, _ string) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
