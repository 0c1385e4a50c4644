package nix

import (
	"fmt"
	"strings"

	"go.trai.ch/shed/internal/core/domain"
)

// GenerateShellExpression creates a Nix expression that defines a shell
// environment with the environment's packages, pinned to the given snapshot.
//
// Attribute names are always quoted so references like "rust-analyzer" are
// looked up as attributes rather than parsed as subtraction.
func GenerateShellExpression(snapshot string, env domain.Environment) string {
	var builder strings.Builder

	builder.WriteString("let\n")
	builder.WriteString(fmt.Sprintf("  flake = builtins.getFlake %q;\n", snapshot))
	builder.WriteString(fmt.Sprintf("  pkgs = flake.legacyPackages.%q;\n", env.Platform.String()))
	builder.WriteString("in\n")
	builder.WriteString("pkgs.mkShell {\n")
	builder.WriteString("  buildInputs = [\n")

	for _, ref := range env.Packages {
		builder.WriteString(fmt.Sprintf("    pkgs.%q\n", ref.String()))
	}

	builder.WriteString("  ];\n")
	builder.WriteString("}\n")

	return builder.String()
}
