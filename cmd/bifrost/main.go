// Package main is the entrypoint for the bifrost CLI.
package main

import (
	"os"

	"github.com/bifrost-labs/bifrost/internal/cli"
)

// Build information, overridable via -ldflags.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

func main() {
	cli.SetVersionInfo(version, gitCommit, buildDate)
	os.Exit(cli.New().Execute())
}
