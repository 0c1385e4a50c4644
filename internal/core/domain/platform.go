package domain

import (
	"fmt"
	"runtime"

	"go.trai.ch/zerr"
)

// Platform is an opaque identifier for a CPU/OS combination, using the
// conventional nixpkgs double form (e.g. "x86_64-linux", "aarch64-darwin").
type Platform struct {
	ID InternedString
}

// NewPlatform creates a Platform from its string identifier.
func NewPlatform(id string) Platform {
	return Platform{ID: NewInternedString(id)}
}

// String returns the platform identifier.
func (p Platform) String() string {
	return p.ID.String()
}

// goarchToNix maps Go architecture names to nixpkgs CPU names.
var goarchToNix = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
}

// goosToNix maps Go OS names to nixpkgs OS names.
var goosToNix = map[string]string{
	"linux":  "linux",
	"darwin": "darwin",
}

// CurrentPlatform derives the platform identifier for the host from GOOS/GOARCH.
func CurrentPlatform() (Platform, error) {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) (Platform, error) {
	cpu, ok := goarchToNix[goarch]
	if !ok {
		return Platform{}, zerr.With(ErrUnknownPlatform, "goarch", goarch)
	}
	osName, ok := goosToNix[goos]
	if !ok {
		return Platform{}, zerr.With(ErrUnknownPlatform, "goos", goos)
	}
	return NewPlatform(fmt.Sprintf("%s-%s", cpu, osName)), nil
}
