// Package main is the entry point for the paramclip CLI.
package main

import (
	"os"

	"github.com/f3rmion/paramclip/cmd/paramclip/cmd"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
