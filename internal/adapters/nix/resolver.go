// Package nix implements snapshot resolution and environment materialization
// using the Nix CLI.
package nix

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Resolver implements ports.SnapshotResolver by querying the pinned snapshot
// with the Nix CLI. Resolution results are cached on disk keyed by
// (snapshot, package), so repeat evaluations never touch the network.
type Resolver struct {
	cacheDir string

	mu         sync.Mutex
	lockedRevs map[string]string
}

// NewResolver creates a Resolver using the default cache directory.
func NewResolver() (*Resolver, error) {
	return NewResolverWithCache(filepath.Join(".shed", "cache", "packages"))
}

// NewResolverWithCache creates a Resolver with a specific cache directory.
func NewResolverWithCache(cacheDir string) (*Resolver, error) {
	if err := os.MkdirAll(cacheDir, dirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create resolver cache directory")
	}
	return &Resolver{
		cacheDir:   cacheDir,
		lockedRevs: make(map[string]string),
	}, nil
}

// Resolve looks up the package in the snapshot for the given platform.
// Returns domain.ErrUnresolvedPackage if the snapshot does not provide it.
func (r *Resolver) Resolve(ctx context.Context, snapshot string, ref domain.PackageReference, platform domain.Platform) (domain.ResolvedPackage, error) {
	name := ref.String()

	if cached, ok := r.checkCache(snapshot, name, platform); ok {
		return cached, nil
	}

	rev, err := r.snapshotRev(ctx, snapshot)
	if err != nil {
		return domain.ResolvedPackage{}, err
	}

	version, err := evalVersion(ctx, snapshot, name, platform)
	if err != nil {
		return domain.ResolvedPackage{}, err
	}

	resolved := domain.ResolvedPackage{
		Name:    domain.NewInternedString(name),
		Version: domain.NewInternedString(version),
		Platforms: map[string]domain.PackageInfo{
			platform.String(): {
				AttrPath: domain.NewInternedString(name),
				Rev:      domain.NewInternedString(rev),
			},
		},
	}

	// Cache write failure is not fatal; the resolution itself succeeded.
	_ = r.updateCache(snapshot, name, resolved)

	return resolved, nil
}

// snapshotRev returns the locked commit revision of the snapshot, querying
// `nix flake metadata` at most once per snapshot.
func (r *Resolver) snapshotRev(ctx context.Context, snapshot string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rev, ok := r.lockedRevs[snapshot]; ok {
		return rev, nil
	}

	//nolint:gosec // snapshot is a validated flake reference from the manifest
	cmd := exec.CommandContext(ctx, "nix", "flake", "metadata", "--json", snapshot)
	output, err := cmd.Output()
	if err != nil {
		return "", zerr.With(wrapNixError(err, "failed to read snapshot metadata"), "snapshot", snapshot)
	}

	var meta flakeMetadata
	if err := json.Unmarshal(output, &meta); err != nil {
		return "", zerr.Wrap(err, "failed to parse snapshot metadata")
	}
	if meta.Locked.Rev == "" {
		return "", zerr.With(domain.ErrInvalidSnapshotRef, "snapshot", snapshot)
	}

	r.lockedRevs[snapshot] = meta.Locked.Rev
	return meta.Locked.Rev, nil
}

// evalVersion evaluates the package's version attribute in the snapshot.
// A missing attribute means the snapshot does not provide the package.
func evalVersion(ctx context.Context, snapshot, name string, platform domain.Platform) (string, error) {
	installable := fmt.Sprintf("%s#legacyPackages.%s.%q.version", snapshot, platform.String(), name)

	//nolint:gosec // installable is built from the validated snapshot and quoted attr name
	cmd := exec.CommandContext(ctx, "nix", "eval", "--raw", installable)
	output, err := cmd.Output()
	if err != nil {
		if stderr := nixStderr(err); isMissingAttribute(stderr) {
			missErr := zerr.With(domain.ErrUnresolvedPackage, "package", name)
			missErr = zerr.With(missErr, "platform", platform.String())
			return "", zerr.With(missErr, "snapshot", snapshot)
		}
		evalErr := zerr.With(wrapNixError(err, "failed to evaluate package"), "package", name)
		return "", zerr.With(evalErr, "snapshot", snapshot)
	}

	return strings.TrimSpace(string(output)), nil
}

// getHash computes the cache key for a package resolution.
func getHash(snapshot, name string) string {
	h := xxhash.New()
	_, _ = h.WriteString(snapshot)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(name)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (r *Resolver) getCachePath(snapshot, name string) string {
	return filepath.Join(r.cacheDir, getHash(snapshot, name)+".json")
}

func (r *Resolver) checkCache(snapshot, name string, platform domain.Platform) (domain.ResolvedPackage, bool) {
	//nolint:gosec // path is constructed from the trusted cache directory
	data, err := os.ReadFile(r.getCachePath(snapshot, name))
	if err != nil {
		return domain.ResolvedPackage{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.ResolvedPackage{}, false
	}
	if entry.Snapshot != snapshot {
		return domain.ResolvedPackage{}, false
	}
	pin, ok := entry.Platforms[platform.String()]
	if !ok {
		return domain.ResolvedPackage{}, false
	}

	return domain.ResolvedPackage{
		Name:    domain.NewInternedString(entry.Name),
		Version: domain.NewInternedString(entry.Version),
		Platforms: map[string]domain.PackageInfo{
			platform.String(): {
				AttrPath:  domain.NewInternedString(pin.AttrPath),
				Rev:       domain.NewInternedString(pin.Rev),
				StorePath: domain.NewInternedString(pin.StorePath),
			},
		},
	}, true
}

func (r *Resolver) updateCache(snapshot, name string, resolved domain.ResolvedPackage) error {
	entry := cacheEntry{
		Name:      name,
		Version:   resolved.Version.String(),
		Snapshot:  snapshot,
		Platforms: make(map[string]pinCache, len(resolved.Platforms)),
		Timestamp: time.Now().UTC(),
	}
	for id, info := range resolved.Platforms {
		entry.Platforms[id] = pinCache{
			AttrPath:  info.AttrPath.String(),
			Rev:       info.Rev.String(),
			StorePath: info.StorePath.String(),
		}
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entry")
	}
	return os.WriteFile(r.getCachePath(snapshot, name), data, filePerm)
}

// nixStderr extracts stderr from an exec error, if present.
func nixStderr(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(exitErr.Stderr)
	}
	return ""
}

// wrapNixError wraps a nix CLI failure, attaching stderr when available.
func wrapNixError(err error, msg string) error {
	wrapped := zerr.Wrap(err, msg)
	if stderr := strings.TrimSpace(nixStderr(err)); stderr != "" {
		wrapped = zerr.With(wrapped, "stderr", stderr)
	}
	return wrapped
}

// isMissingAttribute reports whether nix stderr describes an attribute lookup
// failure, which maps to an unresolved package.
func isMissingAttribute(stderr string) bool {
	if strings.Contains(stderr, "does not provide attribute") {
		return true
	}
	return strings.Contains(stderr, "attribute") && strings.Contains(stderr, "missing")
}

var _ ports.SnapshotResolver = (*Resolver)(nil)
