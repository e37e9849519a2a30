// Package main is the entry point for the docsight CLI binary.
package main

import (
	"os"

	cli "docsight/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
