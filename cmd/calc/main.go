package main

import (
	"os"

	"github.com/Makepad-fr/calc/internal/cli"
)

func main() {
	// Flags and subcommands are parsed by the CLI runner.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
