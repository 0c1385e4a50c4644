package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/zerr"
)

// starterManifest is the manifest written by `shed init`: a Rust toolchain
// environment for x86_64-linux against the default snapshot.
const starterManifest = `version: "1"
snapshot: "` + domain.DefaultSnapshot + `"

platforms:
  x86_64-linux:
    packages:
      - rustc
      - rust-analyzer
      - cargo
`

// WriteStarterManifest creates a starter shed.yaml in the given directory.
// It refuses to overwrite an existing manifest.
func WriteStarterManifest(dir string) (string, error) {
	path := filepath.Join(dir, DefaultFilename)

	if _, err := os.Stat(path); err == nil {
		return "", zerr.With(zerr.New("manifest already exists"), "path", path)
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, "failed to stat manifest"), "path", path)
	}

	if err := os.WriteFile(path, []byte(starterManifest), 0o600); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
	}
	return path, nil
}
