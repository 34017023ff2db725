// cmd/litebench/main.go
package main

import (
	cmd "github.com/mwiater/litebench/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the litebench CLI by delegating to the cobra root command.
// Build metadata is injected with -ldflags "-X main.version=...".
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
