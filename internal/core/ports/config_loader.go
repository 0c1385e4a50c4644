package ports

import "go.trai.ch/shed/internal/core/domain"

// ConfigLoader defines the interface for loading the environment descriptor.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory and returns the descriptor.
	Load(cwd string) (*domain.Descriptor, error)
}
