// Package localstore persists small bits of CLI state between invocations,
// such as the last patient the receptionist worked with. State lives in a
// JSON file under the user config directory.
package localstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Well-known keys.
const (
	KeyLastPatientID       = "last_patient_id"
	KeyLastKinesiologistID = "last_kinesiologist_id"
)

// Store is a file-backed string key/value store.
type Store struct {
	path string
}

// Open returns a Store rooted at <user-config>/frontdesk/state.json. The
// file is created on first Set.
func Open() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "frontdesk", "state.json")), nil
}

// OpenAt returns a Store backed by the given file path.
func OpenAt(path string) *Store {
	return &Store{path: path}
}

// Get returns the value for key and whether it was present. A missing or
// unreadable state file reads as empty.
func (s *Store) Get(key string) (string, bool) {
	state, err := s.load()
	if err != nil {
		return "", false
	}
	v, ok := state[key]
	return v, ok
}

// Set writes key=value, creating the state file and its directory as needed.
func (s *Store) Set(key, value string) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	state[key] = value
	return s.save(state)
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return s.save(state)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	state := map[string]string{}
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt state file reads as empty.
		return map[string]string{}, nil
	}
	return state, nil
}

func (s *Store) save(state map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
