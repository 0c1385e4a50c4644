package resolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shed/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shed/internal/adapters/nix"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shed/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shed/internal/core/ports"
)

// NodeID is the unique identifier for the resolution engine Graft node.
const NodeID graft.ID = "engine.resolve"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nix.ResolverNodeID,
			nix.ManagerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			resolver, err := graft.Dep[ports.SnapshotResolver](ctx)
			if err != nil {
				return nil, err
			}

			manager, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(resolver, manager, recorder, log), nil
		},
	})
}
