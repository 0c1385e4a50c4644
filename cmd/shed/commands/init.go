package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shed/internal/adapters/config"
	"go.trai.ch/shed/internal/ui/output"
	"go.trai.ch/shed/internal/ui/style"
)

func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter manifest with a Rust toolchain environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteStarterManifest(manifestDir(cmd))
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			_, _ = out.WriteString(style.Success.Render(style.Check) + " wrote " + path + "\n")
			return nil
		},
	}
}
