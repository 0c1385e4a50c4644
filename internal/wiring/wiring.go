// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shed/internal/adapters/config"
	_ "go.trai.ch/shed/internal/adapters/envstore"
	_ "go.trai.ch/shed/internal/adapters/fs"
	_ "go.trai.ch/shed/internal/adapters/logger"
	_ "go.trai.ch/shed/internal/adapters/nix"
	_ "go.trai.ch/shed/internal/adapters/shell"
	_ "go.trai.ch/shed/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/shed/internal/app"
	_ "go.trai.ch/shed/internal/engine/resolve"
)
