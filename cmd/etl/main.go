// Package main is the entry point for the etl CLI binary.
package main

import (
	"os"

	"certificados-etl/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
