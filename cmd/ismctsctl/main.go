// Command ismctsctl is the local CLI/TUI harness for the ISMCTS decision
// engine: it loads or synthesizes an observer snapshot, runs a search,
// and renders the result. It never changes search semantics — it only
// feeds the engine inputs and displays its outputs.
package main

import (
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/urfave/cli/v2"
)

func main() {
	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("ISMCTSCTL")

	app := &cli.App{
		Name:    "ismctsctl",
		Usage:   "Drive the ISMCTS trick-taking decision engine from the command line",
		Version: "0.1.0",
		Commands: []*cli.Command{
			decideCommand(log),
			watchCommand(log),
			rulesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
