// Package command provides CLI command definitions for chainmap-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/infra/buildinfo"
)

// VersionCommand creates the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			fmt.Fprintf(c.App.Writer, "chainmap-cli %s\ncommit: %s\nbuilt:  %s\n",
				info.Version, info.Commit, info.BuildTime)
			return nil
		},
	}
}
