package fs

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// LockfileName is the pinned-resolution file written next to the manifest.
	LockfileName = "shed.lock.json"

	lockDirPerm  = 0o750
	lockFilePerm = 0o600
)

// ReadLockfile loads the lockfile from the given directory.
// Returns nil, nil when no lockfile exists.
func ReadLockfile(dir string) (*domain.Lockfile, error) {
	path := filepath.Join(dir, LockfileName)

	//nolint:gosec // path is derived from the manifest directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", path)
	}
	if lock.Version > domain.LockfileVersion {
		return nil, zerr.With(zerr.New("lockfile version is newer than this build understands"),
			"version", lock.Version)
	}

	return &lock, nil
}

// WriteLockfile persists the lockfile to the given directory.
func WriteLockfile(dir string, lock *domain.Lockfile) error {
	if err := os.MkdirAll(dir, lockDirPerm); err != nil {
		return zerr.Wrap(err, "failed to create lockfile directory")
	}

	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}

	path := filepath.Join(dir, LockfileName)
	if err := os.WriteFile(path, data, lockFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	return nil
}
