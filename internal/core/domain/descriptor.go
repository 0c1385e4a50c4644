// Package domain holds the core model: platforms, package references and the
// environment descriptor that maps one to the other.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultSnapshot is the repository snapshot used when the manifest does not
// pin one explicitly.
const DefaultSnapshot = "github:NixOS/nixpkgs/nixos-25.05"

// Descriptor maps platform identifiers to the environments they resolve to.
// It is the in-memory form of shed.yaml: a fixed, enumerable table evaluated
// as a pure function of its inputs.
type Descriptor struct {
	// Snapshot is the flake reference pinning the package repository snapshot
	// all environments resolve against.
	Snapshot string

	// Environments is keyed by platform identifier.
	Environments map[string]Environment

	// Overrides are extra environment variables applied on shell entry.
	Overrides map[string]string
}

// NewDescriptor creates an empty descriptor pinned to the given snapshot.
func NewDescriptor(snapshot string) *Descriptor {
	if snapshot == "" {
		snapshot = DefaultSnapshot
	}
	return &Descriptor{
		Snapshot:     snapshot,
		Environments: make(map[string]Environment),
	}
}

// AddEnvironment registers the environment for its platform, replacing any
// previous entry for the same identifier.
func (d *Descriptor) AddEnvironment(env Environment) {
	d.Environments[env.Platform.String()] = env
}

// Platforms returns the supported platform identifiers in sorted order.
func (d *Descriptor) Platforms() []string {
	ids := make([]string, 0, len(d.Environments))
	for id := range d.Environments {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve returns the environment for the given platform. It is a pure
// function: the same platform always yields the same ordered package set
// within one evaluation of the descriptor.
// Returns ErrUnsupportedPlatform if the platform is not declared.
func (d *Descriptor) Resolve(platform Platform) (Environment, error) {
	env, ok := d.Environments[platform.String()]
	if !ok {
		err := zerr.With(ErrUnsupportedPlatform, "platform", platform.String())
		return Environment{}, zerr.With(err, "supported", strings.Join(d.Platforms(), ", "))
	}
	return env, nil
}

// Validate checks the descriptor for structural problems: an empty platform
// table or a malformed snapshot reference.
func (d *Descriptor) Validate() error {
	if len(d.Environments) == 0 {
		return ErrNoPlatformsDefined
	}
	if !ValidSnapshotRef(d.Snapshot) {
		return zerr.With(ErrInvalidSnapshotRef, "snapshot", d.Snapshot)
	}
	return nil
}

// ValidSnapshotRef reports whether ref looks like a usable flake reference.
// Accepted forms are "github:owner/repo/rev" and explicit path or flake URLs.
func ValidSnapshotRef(ref string) bool {
	if ref == "" {
		return false
	}
	if strings.HasPrefix(ref, "github:") {
		rest := strings.TrimPrefix(ref, "github:")
		parts := strings.Split(rest, "/")
		return len(parts) >= 2 && parts[0] != "" && parts[1] != ""
	}
	return strings.HasPrefix(ref, "path:") ||
		strings.HasPrefix(ref, "git+") ||
		strings.HasPrefix(ref, "flake:")
}
