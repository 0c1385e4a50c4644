// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/shed/internal/core/domain"
)

// SnapshotResolver resolves package references against the pinned repository snapshot.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SnapshotResolver interface {
	// Resolve looks up the package in the given snapshot for the given platform.
	// It should check the local cache first, then query the snapshot itself.
	// Returns domain.ErrUnresolvedPackage if the snapshot does not provide the package.
	Resolve(ctx context.Context, snapshot string, ref domain.PackageReference, platform domain.Platform) (domain.ResolvedPackage, error)
}

// PackageManager handles the materialization of resolved packages.
type PackageManager interface {
	// Install ensures the package pinned at the given snapshot revision is
	// available in the store. Returns the absolute store path.
	Install(ctx context.Context, attrPath, rev string, platform domain.Platform) (storePath string, err error)
}
