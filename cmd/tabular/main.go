// Package main provides the entry point for the tabular CLI tool.
package main

import (
	"github.com/agentstation/tabular/cmd/tabular/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
