package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

func versionCommand(info VersionTags) cli.Command {
	return cli.Command{
		Name:  "version",
		Usage: "Print version tags",
		Action: func(*cli.Context) error {
			_, err := fmt.Fprintf(stdout, "Version:    %s\nGit commit: %s\nBuild date: %s\nBuild OS:   %s\n",
				info.Version, info.GitCommit, info.BuildDate, info.BuildOS)
			return err
		},
	}
}
