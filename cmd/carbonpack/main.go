// Command carbonpack generates supplier carbon disclosure packs.
package main

import (
	"os"

	"github.com/carbonops/carbonpack/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
