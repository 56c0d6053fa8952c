// Command emoticare is a mood-support assistant that answers wellbeing
// questions from a local support document.
package main

import (
	"os"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	// cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
