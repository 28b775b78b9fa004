//go:build docsgen_api
// +build docsgen_api

package main

import (
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/repology-mcp/internal/api"
	"github.com/mozilla-ai/repology-mcp/internal/domain"
	"github.com/mozilla-ai/repology-mcp/internal/files"
	"github.com/mozilla-ai/repology-mcp/internal/perms"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// stubMonitor reports a healthy upstream; only the route definitions matter here.
type stubMonitor struct{}

func (s *stubMonitor) Health() domain.UpstreamHealth {
	return domain.UpstreamHealth{
		Status:  domain.HealthStatusOK,
		Breaker: "disabled",
		BaseURL: repology.DefaultBaseURL,
	}
}

// main generates the OpenAPI specification for the HTTP API served next to the MCP endpoint.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "repology-mcp.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	outputPath := "./docs/api/openapi.yaml"

	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	router := humachi.New(mux, huma.DefaultConfig("repology-mcp", api.APIVersion))

	apiPathPrefix, err := api.RegisterRoutes(router, &stubMonitor{}, "docs")
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}
	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	if err := files.EnsureParentDir(outputPath); err != nil {
		logger.Error("failed to create docs directory", "path", outputPath, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}
