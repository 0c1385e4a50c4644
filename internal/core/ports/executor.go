package ports

import "context"

// Executor defines the interface for launching shell sessions.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// RunShell starts an interactive shell with the given environment
	// variables layered over the host environment. It blocks until the
	// session ends and returns the session's error, if any.
	//
	// The env parameter contains variables in "KEY=VALUE" format, typically
	// provided by an EnvironmentFactory. The overrides map is applied last.
	RunShell(ctx context.Context, env []string, overrides map[string]string) error

	// RunCommand runs a single command inside the environment instead of an
	// interactive session.
	RunCommand(ctx context.Context, argv []string, env []string, overrides map[string]string) error
}
