package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/repology-mcp/internal/contracts"
)

// APIVersion is the version used in URL paths.
const APIVersion = "v1"

// RegisterRoutes registers all API routes on the provided Huma router.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(router huma.API, monitor contracts.UpstreamMonitor, version string) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if monitor == nil || reflect.ValueOf(monitor).IsNil() {
		return "", fmt.Errorf("upstream monitor cannot be nil")
	}

	// Safe way to ensure /api/v1.
	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterHealthRoutes(versionedGroup, monitor, version, "/health")

	return apiPathPrefix, nil
}
