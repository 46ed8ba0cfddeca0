// Package main is the entry point for the bugfind CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/bugfind/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
