package nix

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvFactory implements ports.EnvironmentFactory using `nix print-dev-env`.
type EnvFactory struct {
	store ports.EnvStore
}

// NewEnvFactory creates an EnvironmentFactory caching results in the given store.
func NewEnvFactory(store ports.EnvStore) *EnvFactory {
	return &EnvFactory{store: store}
}

// Materialize builds the variable set for the environment against the snapshot.
// Results are cached by environment ID, so repeat evaluations of the same
// descriptor are constant and never shell out.
func (e *EnvFactory) Materialize(ctx context.Context, snapshot string, env domain.Environment) ([]string, error) {
	envID := env.ID(snapshot)

	if cached, ok := e.store.Get(envID); ok {
		return cached, nil
	}

	expr := GenerateShellExpression(snapshot, env)

	tmpPath, cleanup, err := createNixTempFile(expr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	//nolint:gosec // tmpPath is a trusted temp file created by us
	cmd := exec.CommandContext(ctx, "nix", "print-dev-env", "--json", "--file", tmpPath)
	output, err := cmd.Output()
	if err != nil {
		if stderr := nixStderr(err); isMissingAttribute(stderr) {
			missErr := zerr.With(domain.ErrUnresolvedPackage, "platform", env.Platform.String())
			return nil, zerr.With(missErr, "snapshot", snapshot)
		}
		return nil, zerr.With(wrapNixError(err, "failed to execute nix print-dev-env"), "expression", expr)
	}

	vars, err := ParseDevEnv(output)
	if err != nil {
		return nil, err
	}

	// Cache write failure is not fatal; the environment is already built.
	_ = e.store.Put(envID, vars)

	return vars, nil
}

// createNixTempFile creates a temporary file with the given Nix expression.
func createNixTempFile(expr string) (tmpPath string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "shed-env-*.nix")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create temp nix file")
	}

	tmpPath = tmpFile.Name()
	cleanup = func() {
		_ = os.Remove(tmpPath)
	}

	if _, writeErr := tmpFile.WriteString(expr); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, zerr.Wrap(writeErr, "failed to write nix expression")
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, zerr.Wrap(closeErr, "failed to close temp nix file")
	}

	return tmpPath, cleanup, nil
}

// ParseDevEnv parses `nix print-dev-env --json` output into "KEY=VALUE" pairs,
// keeping only variables relevant to the session.
func ParseDevEnv(jsonData []byte) ([]string, error) {
	var output devEnvOutput
	if err := json.Unmarshal(jsonData, &output); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal nix output")
	}

	env := make([]string, 0, len(output.Variables))
	for key, variable := range output.Variables {
		if !ShouldIncludeVar(key) {
			continue
		}

		var valueStr string
		switch v := variable.Value.(type) {
		case string:
			valueStr = v
		case []interface{}:
			// Arrays are joined with colons, matching PATH-like variables.
			parts := make([]string, len(v))
			for i, part := range v {
				if s, ok := part.(string); ok {
					parts[i] = s
				}
			}
			valueStr = strings.Join(parts, ":")
		default:
			continue
		}

		env = append(env, fmt.Sprintf("%s=%s", key, valueStr))
	}

	// Sort for deterministic output.
	slices.Sort(env)
	return env, nil
}

// ShouldIncludeVar determines whether an environment variable from the dev
// env belongs in the session. Toolchain variables are kept; the user's
// interactive shell variables are not overridden.
func ShouldIncludeVar(key string) bool {
	include := []string{
		"PATH",
		"CARGO",
		"RUST",
		"CC",
		"CXX",
		"LD",
		"AR",
		"CFLAGS",
		"CXXFLAGS",
		"LDFLAGS",
		"PKG_CONFIG_PATH",
		"NIX_",
	}

	for _, prefix := range include {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

var _ ports.EnvironmentFactory = (*EnvFactory)(nil)
