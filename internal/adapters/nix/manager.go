package nix

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"go.trai.ch/shed/internal/core/domain"
	"go.trai.ch/shed/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.PackageManager using the Nix CLI.
type Manager struct{}

// NewManager creates a new PackageManager backed by the Nix CLI.
func NewManager() *Manager {
	return &Manager{}
}

// Install ensures the package pinned at the given snapshot revision is
// available in the store. Returns the absolute store path.
func (m *Manager) Install(ctx context.Context, attrPath, rev string, platform domain.Platform) (string, error) {
	// github:NixOS/nixpkgs/<rev>#legacyPackages.<platform>."<attr>"
	flakeRef := fmt.Sprintf("github:NixOS/nixpkgs/%s#legacyPackages.%s.%q", rev, platform.String(), attrPath)

	// --no-link avoids creating result symlinks in the working directory.
	//nolint:gosec // flakeRef is constructed from resolved pins
	cmd := exec.CommandContext(ctx, "nix", "build", "--json", "--no-link", flakeRef)

	output, err := cmd.Output()
	if err != nil {
		installErr := zerr.With(domain.ErrInstallFailed, "package", attrPath)
		installErr = zerr.With(installErr, "rev", rev)
		installErr = zerr.With(installErr, "error", err.Error())
		if stderr := nixStderr(err); stderr != "" {
			installErr = zerr.With(installErr, "stderr", stderr)
		}
		return "", installErr
	}

	return parseBuildResults(output, attrPath, rev)
}

// parseBuildResults extracts the "out" store path from `nix build --json` output.
func parseBuildResults(output []byte, attrPath, rev string) (string, error) {
	var results buildResults
	if err := json.Unmarshal(output, &results); err != nil {
		parseErr := zerr.Wrap(err, "failed to parse nix build JSON output")
		parseErr = zerr.With(parseErr, "package", attrPath)
		return "", zerr.With(parseErr, "rev", rev)
	}

	if len(results) == 0 {
		emptyErr := zerr.With(domain.ErrInstallFailed, "package", attrPath)
		emptyErr = zerr.With(emptyErr, "rev", rev)
		return "", zerr.With(emptyErr, "reason", "empty build results from nix build")
	}

	storePath, ok := results[0].Outputs["out"]
	if !ok || storePath == "" {
		outErr := zerr.With(domain.ErrInstallFailed, "package", attrPath)
		outErr = zerr.With(outErr, "rev", rev)
		return "", zerr.With(outErr, "reason", "no 'out' output found in build results")
	}

	return storePath, nil
}

var _ ports.PackageManager = (*Manager)(nil)
