package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

func (t *Toolset) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := repology.SearchProjectsRequest{
		Query:   req.GetString("query", ""),
		Limit:   req.GetInt("limit", repology.DefaultLimit),
		Filters: projectFilters(req),
	}

	projects, err := t.client.SearchProjects(ctx, r)
	if err != nil {
		return t.failed(req, err), nil
	}

	result := ProjectsResult{Projects: projects}
	if len(projects) == 0 {
		result.Message = fmt.Sprintf("No projects found matching '%s'", r.Query)
	}

	return newResult(result), nil
}

func (t *Toolset) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := repology.GetProjectRequest{
		ProjectName: req.GetString("project_name", ""),
		Repository:  req.GetString("repository", ""),
	}

	project, err := t.client.GetProject(ctx, r)
	if err != nil {
		return t.failed(req, err), nil
	}

	result := ProjectResult{Name: project.Name, Packages: project.Packages}
	if len(project.Packages) == 0 {
		result.Message = fmt.Sprintf("No packages found for project '%s'", r.ProjectName)
		if r.Repository != "" {
			result.Message += fmt.Sprintf(" in repository '%s'", r.Repository)
		}
	}

	return newResult(result), nil
}

func (t *Toolset) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := repology.ListProjectsRequest{
		StartFrom: req.GetString("start_from", ""),
		EndAt:     req.GetString("end_at", ""),
		Limit:     req.GetInt("limit", repology.DefaultLimit),
		Filters:   projectFilters(req),
	}
	r.Filters.Repos = req.GetString("repos", "")
	r.Filters.Families = req.GetString("families", "")
	r.Filters.Newest = req.GetBool("newest", false)
	r.Filters.Outdated = req.GetBool("outdated", false)
	r.Filters.Problematic = req.GetBool("problematic", false)

	projects, err := t.client.ListProjects(ctx, r)
	if err != nil {
		return t.failed(req, err), nil
	}

	result := ProjectsResult{Projects: projects}
	if len(projects) == 0 {
		result.Message = "No projects found matching the criteria"
	}

	return newResult(result), nil
}

func (t *Toolset) repositoryProblems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := repology.RepositoryProblemsRequest{
		Repository: req.GetString("repository", ""),
		StartFrom:  req.GetString("start_from", ""),
	}

	problems, err := t.client.RepositoryProblems(ctx, r)
	if err != nil {
		return t.failed(req, err), nil
	}

	result := ProblemsResult{Problems: problems}
	if len(problems) == 0 {
		result.Message = fmt.Sprintf("No problems found for repository '%s'", r.Repository)
	}

	return newResult(result), nil
}

func (t *Toolset) maintainerProblems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := repology.MaintainerProblemsRequest{
		Maintainer: req.GetString("maintainer", ""),
		Repository: req.GetString("repository", ""),
		StartFrom:  req.GetString("start_from", ""),
	}

	problems, err := t.client.MaintainerProblems(ctx, r)
	if err != nil {
		return t.failed(req, err), nil
	}

	result := ProblemsResult{Problems: problems}
	if len(problems) == 0 {
		result.Message = fmt.Sprintf("No problems found for maintainer '%s'", r.Maintainer)
		if r.Repository != "" {
			result.Message += fmt.Sprintf(" in repository '%s'", r.Repository)
		}
	}

	return newResult(result), nil
}

// projectFilters reads the filters shared by search_projects and list_projects.
func projectFilters(req mcp.CallToolRequest) repology.ProjectFilters {
	return repology.ProjectFilters{
		Maintainer: req.GetString("maintainer", ""),
		Category:   req.GetString("category", ""),
		InRepo:     req.GetString("inrepo", ""),
		NotInRepo:  req.GetString("notinrepo", ""),
	}
}

// failed logs err and converts it into a tool error result.
func (t *Toolset) failed(req mcp.CallToolRequest, err error) *mcp.CallToolResult {
	kind := errorKind(err)
	if kind == ErrorKindInvalidArgument {
		t.logger.Debug("Rejected tool call", "tool", req.Params.Name, "error", err)
	} else {
		t.logger.Warn("Tool call failed", "tool", req.Params.Name, "kind", kind, "error", err)
	}
	return newErrorResult(err)
}

// withArgumentValidation rejects calls whose arguments do not satisfy the tool's input schema.
func withArgumentValidation(v *argumentValidator, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := v.validate(req.GetArguments()); err != nil {
			return newErrorResult(err), nil
		}
		return next(ctx, req)
	}
}
