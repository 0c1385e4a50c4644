package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [-- command args...]",
		Short: "Enter the development shell for the current platform",
		Long: "Resolves the manifest's environment for the current platform, " +
			"materializes it, and starts an interactive shell inside it. " +
			"Arguments after -- are run as a single command instead.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Shell(cmd.Context(), manifestDir(cmd), args)
		},
	}
}
