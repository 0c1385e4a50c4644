package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/shed/internal/ui/output"
	"go.trai.ch/shed/internal/ui/style"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve and pin the environment without entering a shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := c.app.Resolve(cmd.Context(), manifestDir(cmd))
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			platform := resolved.Environment.Platform

			_, _ = out.WriteString(style.Header.Render("snapshot") + " " + resolved.Snapshot + "\n")
			_, _ = out.WriteString(style.Header.Render("platform") + " " + platform.String() + "\n")

			for _, pkg := range resolved.Packages {
				line := fmt.Sprintf("%s %s %s\n",
					style.Success.Render(style.Check),
					pkg.Name.String(),
					style.Muted.Render(pkg.Version.String()),
				)
				_, _ = out.WriteString(line)
			}
			return nil
		},
	}
}
