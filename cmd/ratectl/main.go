// Package main is the entry point for the ratectl operator CLI.
package main

import (
	"os"

	"tourpricing/cmd/ratectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
