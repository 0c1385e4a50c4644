package domain

import (
	"go.trai.ch/zerr"
)

// PackageReference is the name of a package as declared in the manifest.
// It has no internal structure beyond identity; resolution against the
// repository snapshot gives it meaning.
type PackageReference struct {
	Name InternedString
}

// NewPackageReference creates a PackageReference from a package name.
func NewPackageReference(name string) PackageReference {
	return PackageReference{Name: NewInternedString(name)}
}

// String returns the package name.
func (r PackageReference) String() string {
	return r.Name.String()
}

// PackageInfo carries the snapshot-specific pin for a package on one platform.
type PackageInfo struct {
	// AttrPath is the nixpkgs attribute path to the package (e.g. "rust-analyzer").
	AttrPath InternedString

	// Rev is the snapshot revision (commit SHA) the package was resolved against.
	Rev InternedString

	// StorePath is the materialized store path, if the package has been built.
	StorePath InternedString
}

// ResolvedPackage is a package reference pinned against the repository snapshot,
// with per-platform resolution data.
type ResolvedPackage struct {
	// Name is the package name as declared in the manifest.
	Name InternedString

	// Version is the version string reported by the snapshot (e.g. "1.84.0").
	Version InternedString

	// Platforms maps platform identifiers to their pin data.
	Platforms map[string]PackageInfo
}

// InfoFor retrieves the pin data for the given platform.
// Returns ErrUnsupportedPlatform if the package was not resolved for it.
func (p *ResolvedPackage) InfoFor(platform Platform) (PackageInfo, error) {
	info, exists := p.Platforms[platform.String()]
	if !exists {
		err := zerr.With(ErrUnsupportedPlatform, "package", p.Name.String())
		err = zerr.With(err, "version", p.Version.String())
		return PackageInfo{}, zerr.With(err, "requested_platform", platform.String())
	}
	return info, nil
}
