// cmd/suitebench/main.go
package main

import (
	cmd "github.com/mwiater/suitebench/internal/cli"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main records build metadata and delegates to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
