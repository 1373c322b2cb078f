// Package prefs is a small persistent key-value store for user defaults,
// such as the project and activity pre-filled on new log entries.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// Keys read when a new draft event is created.
const (
	KeyDefaultProject  = "defaultProject"
	KeyDefaultActivity = "defaultActivity"
)

// Store is a JSON-file backed map of string preferences.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// FilePath returns the preferences file inside base.
func FilePath(base string) string {
	return filepath.Join(base, "prefs.json")
}

// Open loads the preferences at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs error reading %s: %w", path, err)
	}
	if err := sonic.Unmarshal(data, &s.values); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Delete removes key and persists the file. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// All returns a copy of every stored value.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// save atomically writes the map. Callers hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("prefs error creating directories: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("prefs error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("prefs error renaming temp file: %w", err)
	}
	return nil
}
