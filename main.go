package main

import (
	"github.com/mozilla-ai/repology-mcp/cmd"
)

func main() {
	// Execute the root command.
	cmd.Execute()
}
