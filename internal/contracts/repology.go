package contracts

import (
	"context"

	"github.com/mozilla-ai/repology-mcp/internal/domain"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// RepologyClient provides read-only access to the Repology API.
// It is implemented by *repology.Client.
type RepologyClient interface {
	// SearchProjects returns projects whose name contains the query.
	SearchProjects(ctx context.Context, req repology.SearchProjectsRequest) ([]repology.ProjectSummary, error)

	// GetProject returns the packages of a single project.
	GetProject(ctx context.Context, req repology.GetProjectRequest) (repology.ProjectDetail, error)

	// ListProjects returns one page of projects.
	ListProjects(ctx context.Context, req repology.ListProjectsRequest) ([]repology.ProjectSummary, error)

	// RepositoryProblems returns one page of problems for a repository.
	RepositoryProblems(ctx context.Context, req repology.RepositoryProblemsRequest) ([]repology.Problem, error)

	// MaintainerProblems returns one page of problems for a maintainer.
	MaintainerProblems(ctx context.Context, req repology.MaintainerProblemsRequest) ([]repology.Problem, error)
}

// UpstreamMonitor reports on the health of the connection to the Repology API.
type UpstreamMonitor interface {
	// Health returns a snapshot of the upstream health.
	Health() domain.UpstreamHealth
}
