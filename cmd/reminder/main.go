// Package main is the entry point for the task-reminder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/task-reminder/internal/app"
	"github.com/runoshun/task-reminder/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cli.NewRootCommand(app.New, version)
	return rootCmd.Execute()
}
