// Package resolve implements the parallel package resolution engine.
package resolve

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine coordinates resolving and installing the packages of an environment.
// Packages are processed in parallel, but results always come back in
// declaration order.
type Engine struct {
	resolver    ports.SnapshotResolver
	manager     ports.PackageManager
	recorder    ports.Telemetry
	logger      ports.Logger
	parallelism int
}

// NewEngine creates a new Engine.
func NewEngine(
	resolver ports.SnapshotResolver,
	manager ports.PackageManager,
	recorder ports.Telemetry,
	logger ports.Logger,
) *Engine {
	return &Engine{
		resolver:    resolver,
		manager:     manager,
		recorder:    recorder,
		logger:      logger,
		parallelism: runtime.NumCPU(),
	}
}

// Resolve pins every package of the environment against the snapshot.
// Pins already present in the lockfile for the same snapshot and platform are
// reused without querying the snapshot; lock may be nil.
//
// The returned slice preserves the environment's declaration order. The first
// resolution failure aborts the remaining lookups.
func (e *Engine) Resolve(
	ctx context.Context,
	snapshot string,
	env domain.Environment,
	lock *domain.Lockfile,
) ([]domain.ResolvedPackage, error) {
	results := make([]domain.ResolvedPackage, len(env.Packages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, ref := range env.Packages {
		g.Go(func() error {
			vctx, vertex := e.recorder.Record(ctx, fmt.Sprintf("resolve %s", ref))

			if pinned, ok := e.lookupPin(lock, snapshot, ref, env.Platform); ok {
				vertex.Cached()
				vertex.Complete(nil)
				results[i] = pinned
				return nil
			}

			pkg, err := e.resolver.Resolve(vctx, snapshot, ref, env.Platform)
			if err != nil {
				err = zerr.With(err, "package", ref.String())
				vertex.Complete(err)
				return err
			}

			vertex.Log(domain.LogLevelInfo, fmt.Sprintf("pinned %s %s", ref, pkg.Version))
			vertex.Complete(nil)
			results[i] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info(fmt.Sprintf("resolved %d packages against %s", len(results), snapshot))
	return results, nil
}

// lookupPin checks whether the lockfile already carries a usable pin for the
// reference. A pin is usable only if the lockfile was resolved against the
// same snapshot and covers the requested platform.
func (e *Engine) lookupPin(
	lock *domain.Lockfile,
	snapshot string,
	ref domain.PackageReference,
	platform domain.Platform,
) (domain.ResolvedPackage, bool) {
	if lock == nil || lock.Snapshot != snapshot {
		return domain.ResolvedPackage{}, false
	}

	pinned, ok := lock.Lookup(ref.String())
	if !ok {
		return domain.ResolvedPackage{}, false
	}
	if _, err := pinned.InfoFor(platform); err != nil {
		return domain.ResolvedPackage{}, false
	}
	return pinned, true
}

// Install materializes the store path of every resolved package for the
// platform and returns the packages with their pins updated. Already
// materialized packages are installed again only if their store path is empty.
func (e *Engine) Install(
	ctx context.Context,
	packages []domain.ResolvedPackage,
	platform domain.Platform,
) ([]domain.ResolvedPackage, error) {
	results := make([]domain.ResolvedPackage, len(packages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, pkg := range packages {
		g.Go(func() error {
			info, err := pkg.InfoFor(platform)
			if err != nil {
				return err
			}

			vctx, vertex := e.recorder.Record(ctx, fmt.Sprintf("install %s", pkg.Name))

			if info.StorePath.String() != "" {
				vertex.Cached()
				vertex.Complete(nil)
				results[i] = pkg
				return nil
			}

			storePath, err := e.manager.Install(vctx, info.AttrPath.String(), info.Rev.String(), platform)
			if err != nil {
				err = zerr.With(err, "package", pkg.Name.String())
				vertex.Complete(err)
				return err
			}

			info.StorePath = domain.NewInternedString(storePath)
			pkg.Platforms[platform.String()] = info

			vertex.Log(domain.LogLevelInfo, fmt.Sprintf("installed %s", storePath))
			vertex.Complete(nil)
			results[i] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
