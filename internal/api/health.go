package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/repology-mcp/internal/contracts"
	"github.com/mozilla-ai/repology-mcp/internal/domain"
)

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
)

// DomainUpstreamHealth is a wrapper that allows receivers to be declared in the API package that deal with domain types.
type DomainUpstreamHealth domain.UpstreamHealth

// HealthStatus represents the current status of the service.
type HealthStatus string

// Health is used to report the status of the service and its connection to Repology.
type Health struct {
	Status  HealthStatus `doc:"Overall service status"                            json:"status"`
	Version string       `doc:"Service version"                                   json:"version"`
	BaseURL string       `doc:"Repology API base URL"                             json:"baseURL"`
	Breaker string       `doc:"Circuit breaker state: disabled, closed or open"   json:"breaker"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body Health
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainUpstreamHealth) ToAPIType(version string) (Health, error) {
	status, err := parseHealthStatus(d.Status)
	if err != nil {
		return Health{}, err
	}

	return Health{
		Status:  status,
		Version: version,
		BaseURL: d.BaseURL,
		Breaker: d.Breaker,
	}, nil
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(routerAPI huma.API, monitor contracts.UpstreamMonitor, version string, path string) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Path:        path,
			Summary:     "Get the health status of the service",
			Tags:        []string{"Health"},
		},
		func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
			return handleHealth(monitor, version)
		},
	)
}

// handleHealth is the handler for retrieving the current health of the service.
func handleHealth(monitor contracts.UpstreamMonitor, version string) (*HealthResponse, error) {
	data, err := DomainUpstreamHealth(monitor.Health()).ToAPIType(version)
	if err != nil {
		return nil, err
	}

	return &HealthResponse{Body: data}, nil
}

func parseHealthStatus(status domain.HealthStatus) (HealthStatus, error) {
	switch status {
	case domain.HealthStatusOK:
		return HealthStatusOK, nil
	case domain.HealthStatusDegraded:
		return HealthStatusDegraded, nil
	default:
		return "", fmt.Errorf("unknown health status: %s", status)
	}
}
