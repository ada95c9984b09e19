// Package main provides the entry point for the wiki CLI.
package main

import (
	"os"

	"github.com/wiqnnc/wiki/cmd/wiki/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
