// Package main is the single-binary entrypoint for Ahorify.
package main

import "github.com/ahorify/ahorify/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
