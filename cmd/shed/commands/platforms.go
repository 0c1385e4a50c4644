package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shed/internal/ui/output"
	"go.trai.ch/shed/internal/ui/style"
)

func (c *CLI) newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the platforms declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platforms, err := c.app.Platforms(manifestDir(cmd))
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, platform := range platforms {
				_, _ = out.WriteString(style.Muted.Render(style.Dot) + " " + platform + "\n")
			}
			return nil
		},
	}
}
