package persist

import (
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore keeps all values in one JSON object file. The file is read by
// Load and rewritten in full on every Set or Delete.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]json.RawMessage
}

// NewFileStore returns an empty store backed by path. Call Load to read any
// existing contents.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, values: make(map[string]json.RawMessage)}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load replaces the in-memory values with the file contents. A missing file
// leaves the store empty. A file that is not a JSON object is reported as a
// *StoreError and the store is left empty.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &StoreError{Path: s.path, Op: "read", Err: err}
	}
	if len(data) == 0 {
		return nil
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return &StoreError{Path: s.path, Op: "decode", Err: err}
	}
	if values != nil {
		s.values = values
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := maps.Clone(s.values)
	next[key] = slices.Clone(value)
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Delete removes key and writes the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	next := maps.Clone(s.values)
	delete(next, key)
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Keys returns the stored keys, sorted.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.values)
}

func (s *FileStore) write(values map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &StoreError{Path: s.path, Op: "create directory", Err: err}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return &StoreError{Path: s.path, Op: "encode", Err: err}
	}

	// Write to a sibling temp file first so a crash never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return &StoreError{Path: s.path, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &StoreError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}
