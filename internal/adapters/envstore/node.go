package envstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shed/internal/core/ports"
)

const NodeID graft.ID = "adapter.env_store"

func init() {
	graft.Register(graft.Node[ports.EnvStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvStore, error) {
			store, err := NewStore(DefaultPath)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
