package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedPlatform is returned when an environment is requested for a
	// platform identifier that the descriptor does not declare.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrUnresolvedPackage is returned when a package reference cannot be found
	// in the pinned repository snapshot.
	ErrUnresolvedPackage = zerr.New("unresolved package")

	// ErrNoPlatformsDefined is returned when a descriptor declares no platforms at all.
	ErrNoPlatformsDefined = zerr.New("no platforms defined")

	// ErrInvalidSnapshotRef is returned when the snapshot flake reference is malformed.
	ErrInvalidSnapshotRef = zerr.New("invalid snapshot reference")

	// ErrStorePathMissing is returned when a materialized store path does not
	// exist on disk after resolution.
	ErrStorePathMissing = zerr.New("store path missing")

	// ErrInstallFailed is returned when the package manager cannot materialize
	// a resolved package into the store.
	ErrInstallFailed = zerr.New("package install failed")

	// ErrUnknownPlatform is returned when the current GOOS/GOARCH pair has no
	// platform identifier mapping.
	ErrUnknownPlatform = zerr.New("unknown host platform")
)
