// Command pileus is the Pileus API command-line tool.
package main

import (
	"os"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrapper(wire)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
