// Package envstore implements the on-disk cache of materialized environments.
package envstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// DefaultPath is the cache file used when no explicit path is given.
var DefaultPath = filepath.Join(".shed", "cache", "environments.json")

// Store implements ports.EnvStore using a flat JSON file keyed by environment ID.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string][]string
}

// NewStore creates an EnvStore backed by the file at the given path.
// A missing or corrupt file starts the store empty rather than failing;
// the cache is advisory.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string][]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read environment cache")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		// Corrupt cache is discarded and rebuilt on the next Put.
		s.cache = make(map[string][]string)
	}

	return nil
}

// Get retrieves the cached variables for an environment ID.
func (s *Store) Get(envID string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vars, ok := s.cache[envID]
	return vars, ok
}

// Put stores the variables for an environment ID and persists the cache.
func (s *Store) Put(envID string, vars []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[envID] = vars
	return s.save()
}

// save writes the cache back to disk. Caller must hold the write lock.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal environment cache")
	}

	if err := os.WriteFile(s.path, data, filePerm); err != nil {
		return zerr.Wrap(err, "failed to write environment cache")
	}
	return nil
}
