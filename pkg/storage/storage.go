package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// Store persists the full ledger snapshot under a single key. The ledger
// always serializes and replaces the whole collection, so the interface is
// deliberately a byte-level load/save pair.
type Store interface {
	// Load returns the stored snapshot, or (nil, nil) when nothing has been
	// stored yet.
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the snapshot in a single JSON file. Writes go through a
// temp file and rename so a crash mid-write never leaves a half-written
// ledger behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	Data []byte
	// SaveErr, when set, makes every Save fail. Used to exercise the
	// ledger's rollback path.
	SaveErr error
}

func (s *MemStore) Load() ([]byte, error) {
	return s.Data, nil
}

func (s *MemStore) Save(data []byte) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Data = append([]byte(nil), data...)
	return nil
}
