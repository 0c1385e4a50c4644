package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shed/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/shed/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shed/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/shed/internal/adapters/nix"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shed/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/shed/internal/engine/resolve"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			resolve.NodeID,
			nix.EnvFactoryNodeID,
			shell.NodeID,
			fs.VerifierNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*resolve.Engine](ctx)
	if err != nil {
		return nil, err
	}

	envFactory, err := graft.Dep[ports.EnvironmentFactory](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, engine, envFactory, executor, verifier, log), nil
}
