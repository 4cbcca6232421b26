package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hexwheel/maze-navigator/internal/mazefile"
)

// validateCommand adapts the teacher's own validate/validate.go:
// structural and connectivity checks over one file, a human report, and
// a non-zero exit when invalid.
func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a .maze file for structural consistency and entrance-to-goal reachability",
		ArgsUsage: "<file.maze>",
		Action:    runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("validate requires a <file.maze> argument", 1)
	}

	doc, err := mazefile.Load(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load %s: %v", path, err), 1)
	}

	result := mazefile.Validate(doc)

	if result.Valid {
		fmt.Printf("✅ %s is valid\n", path)
	} else {
		fmt.Printf("❌ %s is invalid\n", path)
	}
	for _, note := range result.Notes {
		fmt.Printf("  %s\n", note)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}
