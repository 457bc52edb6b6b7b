package main

import (
	"errors"
	"os"

	"github.com/sdejongh/rawpick/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
