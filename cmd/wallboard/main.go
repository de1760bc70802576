// Package main is the entry point for the wallboard CLI, view and tray.
package main

import (
	"os"

	"github.com/watchfire-io/wallboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
