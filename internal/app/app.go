// Package app implements the application layer for shed.
package app

import (
	"context"

	"go.trai.ch/shed/internal/adapters/fs"
	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/shed/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	engine       *resolve.Engine
	envFactory   ports.EnvironmentFactory
	executor     ports.Executor
	verifier     ports.Verifier
	logger       ports.Logger

	// platform overrides host detection when non-zero.
	platform domain.Platform
}

// WithPlatform makes the app resolve for the given platform instead of
// detecting the host platform.
func WithPlatform(platform domain.Platform) func(*App) {
	return func(a *App) {
		a.platform = platform
	}
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	engine *resolve.Engine,
	envFactory ports.EnvironmentFactory,
	executor ports.Executor,
	verifier ports.Verifier,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		engine:       engine,
		envFactory:   envFactory,
		executor:     executor,
		verifier:     verifier,
		logger:       logger,
	}
}

// ResolvedEnvironment is the outcome of resolving the manifest for one platform.
type ResolvedEnvironment struct {
	Snapshot    string
	Environment domain.Environment
	Packages    []domain.ResolvedPackage
	Overrides   map[string]string
}

// Resolve loads the manifest from dir, resolves the current platform's
// environment against the snapshot, installs the packages, and refreshes the
// lockfile. The returned packages preserve the manifest's declaration order.
func (a *App) Resolve(ctx context.Context, dir string) (*ResolvedEnvironment, error) {
	descriptor, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	platform, err := a.targetPlatform()
	if err != nil {
		return nil, err
	}

	env, err := descriptor.Resolve(platform)
	if err != nil {
		return nil, err
	}

	lock, err := fs.ReadLockfile(dir)
	if err != nil {
		a.logger.Warn("ignoring unreadable lockfile: " + err.Error())
		lock = nil
	}

	packages, err := a.engine.Resolve(ctx, descriptor.Snapshot, env, lock)
	if err != nil {
		return nil, zerr.Wrap(err, "resolution failed")
	}

	packages, err = a.engine.Install(ctx, packages, platform)
	if err != nil {
		return nil, zerr.Wrap(err, "installation failed")
	}

	if err := a.verifyStorePaths(packages, platform); err != nil {
		return nil, err
	}

	if err := a.writeLockfile(dir, descriptor.Snapshot, packages); err != nil {
		return nil, err
	}

	return &ResolvedEnvironment{
		Snapshot:    descriptor.Snapshot,
		Environment: env,
		Packages:    packages,
		Overrides:   descriptor.Overrides,
	}, nil
}

// Shell resolves the environment for dir and drops the user into an
// interactive shell session inside it. When argv is non-empty, the command is
// run inside the environment instead and Shell returns its error.
func (a *App) Shell(ctx context.Context, dir string, argv []string) error {
	resolved, err := a.Resolve(ctx, dir)
	if err != nil {
		return err
	}

	vars, err := a.envFactory.Materialize(ctx, resolved.Snapshot, resolved.Environment)
	if err != nil {
		return zerr.Wrap(err, "failed to materialize environment")
	}

	if len(argv) > 0 {
		return a.executor.RunCommand(ctx, argv, vars, resolved.Overrides)
	}

	a.logger.Info("entering shell for " + resolved.Environment.Platform.String())
	return a.executor.RunShell(ctx, vars, resolved.Overrides)
}

// Platforms returns the platform identifiers declared in the manifest, sorted.
func (a *App) Platforms(dir string) ([]string, error) {
	descriptor, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return descriptor.Platforms(), nil
}

func (a *App) targetPlatform() (domain.Platform, error) {
	if a.platform.String() != "" {
		return a.platform, nil
	}
	return domain.CurrentPlatform()
}

func (a *App) verifyStorePaths(packages []domain.ResolvedPackage, platform domain.Platform) error {
	paths := make([]string, 0, len(packages))
	for _, pkg := range packages {
		info, err := pkg.InfoFor(platform)
		if err != nil {
			return err
		}
		paths = append(paths, info.StorePath.String())
	}

	missing, ok, err := a.verifier.VerifyStorePaths(paths)
	if err != nil {
		return zerr.Wrap(err, "store path verification failed")
	}
	if !ok {
		return zerr.With(domain.ErrStorePathMissing, "path", missing)
	}
	return nil
}

func (a *App) writeLockfile(dir, snapshot string, packages []domain.ResolvedPackage) error {
	lock := domain.NewLockfile(snapshot)
	for _, pkg := range packages {
		lock.Pin(pkg)
	}
	if err := fs.WriteLockfile(dir, lock); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	return nil
}
