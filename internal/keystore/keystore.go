// Package keystore persists the audit encryption key as an opaque blob
// with write-once semantics.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gradebook/internal/common"
)

// ErrKeyExists is returned by Save when a key has already been
// persisted. Exactly one key ever exists per store; regenerating it
// would strand every event encrypted under the old key.
var ErrKeyExists = errors.New("key already exists")

// Store is a write-once byte store for key material.
type Store interface {
	// Load returns the persisted key, or common.ErrorNotFound if no key
	// has been saved yet.
	Load() ([]byte, error)
	// Save persists the key exactly once. A concurrent or earlier Save
	// wins and subsequent calls return ErrKeyExists.
	Save(key []byte) error
}

// FileStore keeps the key in a single file created with restrictive
// permissions. Save relies on O_EXCL so that two racing first writers
// cannot both persist a key: the filesystem picks exactly one winner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]byte, error) {
	key, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return key, nil
}

func (s *FileStore) Save(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return ErrKeyExists
		}
		return fmt.Errorf("creating key file: %w", err)
	}

	if _, err := f.Write(key); err != nil {
		f.Close()
		return fmt.Errorf("writing key file: %w", err)
	}
	return f.Close()
}
