// Package kvstore is a file-backed key/value store: the server-side stand-in
// for per-browser local storage. Each key maps to one JSON document on disk
// and survives restarts.
package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating kvstore dir")
	}
	return &Store{dir: dir}, nil
}

// Get unmarshals the value stored under key into v.
// The second return is false when the key is absent.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading key %q", key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decoding key %q", key)
	}
	return true, nil
}

// Set overwrites the value stored under key. The write goes through a temp
// file and a rename so readers never observe a torn document.
func (s *Store) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding key %q", key)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(s.path(key))+".*")
	if err != nil {
		return errors.Wrapf(err, "writing key %q", key)
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing key %q", key)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing key %q", key)
	}
	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing key %q", key)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting key %q", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	// keys are fixed application constants; the replacer just keeps odd ones
	// from escaping the store directory
	safe := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}
