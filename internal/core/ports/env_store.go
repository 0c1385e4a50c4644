package ports

// EnvStore defines the interface for caching materialized environments.
//
//go:generate go run go.uber.org/mock/mockgen -source=env_store.go -destination=mocks/mock_env_store.go -package=mocks
type EnvStore interface {
	// Get retrieves the cached variables for an environment ID.
	// Returns nil, false if not cached.
	Get(envID string) ([]string, bool)

	// Put stores the variables for an environment ID.
	Put(envID string, vars []string) error
}
