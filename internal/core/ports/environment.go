package ports

import (
	"context"

	"go.trai.ch/shed/internal/core/domain"
)

// EnvironmentFactory materializes declared environments into shell-ready
// variable sets.
//
// Implementations are responsible for:
//   - Turning the environment's package references into concrete store packages
//   - Constructing environment variables (PATH and friends) for the session
//   - Caching materialized environments so repeat evaluations are constant
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentFactory interface {
	// Materialize builds the variable set for the environment against the
	// given snapshot. Returns variables as "KEY=VALUE" strings suitable for
	// process execution.
	//
	// For a fixed (snapshot, environment) pair the output is constant.
	Materialize(ctx context.Context, snapshot string, env domain.Environment) ([]string, error)
}
