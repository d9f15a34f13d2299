// Command plantuml-mcp serves PlantUML rendering tools over MCP and exposes
// the same operations as a command line.
package main

import "github.com/ironsheep/plantuml-mcp/cmd/plantuml-mcp/commands"

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	commands.SetBuildInfo(Version, BuildTime, GitCommit)
	commands.Execute()
}
