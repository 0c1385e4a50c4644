package nix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shed/internal/adapters/envstore"
	"go.trai.ch/shed/internal/core/ports"
)

const (
	ResolverNodeID   graft.ID = "adapter.nix.resolver"
	ManagerNodeID    graft.ID = "adapter.nix.manager"
	EnvFactoryNodeID graft.ID = "adapter.nix.env_factory"
)

func init() {
	// Snapshot Resolver Node
	graft.Register(graft.Node[ports.SnapshotResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SnapshotResolver, error) {
			resolver, err := NewResolver()
			if err != nil {
				return nil, err
			}
			return resolver, nil
		},
	})

	// Package Manager Node
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        ManagerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageManager, error) {
			return NewManager(), nil
		},
	})

	// Environment Factory Node
	graft.Register(graft.Node[ports.EnvironmentFactory]{
		ID:        EnvFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{envstore.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentFactory, error) {
			store, err := graft.Dep[ports.EnvStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewEnvFactory(store), nil
		},
	})
}
