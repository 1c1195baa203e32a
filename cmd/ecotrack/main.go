// Command ecotrack calculates, refines, and offsets personal carbon
// footprints from self-reported lifestyle activities.
package main

import (
	"fmt"
	"os"

	"github.com/ecotrack/ecotrack/internal/cli"
	"github.com/ecotrack/ecotrack/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
