package server

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/repology-mcp/internal/contracts"
)

// Dependencies contains the required external dependencies for the Server.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// Logger for server operations.
	Logger hclog.Logger

	// Tools are the MCP tools served to clients.
	Tools []mcpserver.ServerTool

	// Upstream reports the health of the Repology API connection.
	Upstream contracts.UpstreamMonitor

	// Version is advertised to MCP clients and on the health endpoint.
	Version string
}

// NewDependencies creates and validates Dependencies.
func NewDependencies(
	logger hclog.Logger,
	tools []mcpserver.ServerTool,
	upstream contracts.UpstreamMonitor,
	version string,
) (Dependencies, error) {
	deps := Dependencies{
		Logger:   logger,
		Tools:    tools,
		Upstream: upstream,
		Version:  version,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if len(d.Tools) == 0 {
		return fmt.Errorf("at least one tool is required")
	}
	if d.Upstream == nil || reflect.ValueOf(d.Upstream).IsNil() {
		return fmt.Errorf("upstream monitor cannot be nil")
	}
	if strings.TrimSpace(d.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	return nil
}
