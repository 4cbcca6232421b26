// Command maze-navigator is operational tooling around the navigation
// and learning core: validating `.maze` files, driving a Navigator
// headlessly against one, inspecting or erasing persisted state,
// reporting wall density and reachability, and serving the process's
// Prometheus registry over HTTP. It does not
// render a maze or run an interactive session — that is the excluded
// simulator/console's job.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hexwheel/maze-navigator/internal/recorder"
)

func main() {
	if err := recorder.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	cmd := &cli.Command{
		Name:  "maze-navigator",
		Usage: "operate the maze navigation and learning core",
		Commands: []*cli.Command{
			validateCommand(),
			solveCommand(),
			storeCommand(),
			serveMetricsCommand(),
			analyzeCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
