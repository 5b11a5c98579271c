// Package main is the entry point for the recap CLI.
package main

import (
	"os"

	"github.com/recapkit/recap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
