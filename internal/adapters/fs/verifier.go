// Package fs provides filesystem adapters.
package fs

import (
	"os"

	"go.trai.ch/zerr"
)

// Verifier provides functionality to verify materialized store paths.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyStorePaths checks that every store path exists on disk.
// Returns the first missing path, if any.
func (v *Verifier) VerifyStorePaths(paths []string) (string, bool, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return path, false, nil
			}
			return path, false, zerr.With(zerr.Wrap(err, "failed to stat store path"), "path", path)
		}
	}
	return "", true, nil
}
