// Package tools exposes the Repology client as a set of read-only MCP tools.
package tools

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/repology-mcp/internal/contracts"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// Toolset binds the MCP tool definitions to a Repology client.
// NewToolset should be used to create instances of Toolset.
type Toolset struct {
	client   contracts.RepologyClient
	logger   hclog.Logger
	validate bool
}

// NewToolset creates a Toolset which serves tool calls using client.
func NewToolset(client contracts.RepologyClient, opt ...Option) (*Toolset, error) {
	if client == nil || reflect.ValueOf(client).IsNil() {
		return nil, fmt.Errorf("client cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Toolset{
		client:   client,
		logger:   opts.Logger.Named("tools"),
		validate: opts.ValidateArguments,
	}, nil
}

// ServerTools returns every tool paired with its handler, ready to be added to an MCP server.
func (t *Toolset) ServerTools() ([]server.ServerTool, error) {
	defs := []server.ServerTool{
		{Tool: searchProjectsTool(), Handler: t.searchProjects},
		{Tool: getProjectTool(), Handler: t.getProject},
		{Tool: listProjectsTool(), Handler: t.listProjects},
		{Tool: repositoryProblemsTool(), Handler: t.repositoryProblems},
		{Tool: maintainerProblemsTool(), Handler: t.maintainerProblems},
	}

	if !t.validate {
		return defs, nil
	}

	for i := range defs {
		v, err := newArgumentValidator(defs[i].Tool)
		if err != nil {
			return nil, err
		}
		defs[i].Handler = withArgumentValidation(v, defs[i].Handler)
	}

	return defs, nil
}

// Names returns the names of all tools in the order they are registered.
func Names() []string {
	return []string{
		string(repology.OperationSearchProjects),
		string(repology.OperationGetProject),
		string(repology.OperationListProjects),
		string(repology.OperationRepositoryProblems),
		string(repology.OperationMaintainerProblems),
	}
}

// readOnly are the annotations shared by every tool.
func readOnly() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}
}

func limitParam(maxLimit int) mcp.ToolOption {
	return mcp.WithNumber(
		"limit",
		integer(),
		mcp.Description(fmt.Sprintf("Maximum number of results (1-%d)", maxLimit)),
		mcp.DefaultNumber(repology.DefaultLimit),
		mcp.Min(1),
		mcp.Max(float64(maxLimit)),
	)
}

func searchProjectsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search for projects by name substring. Returns each matching project with its packages."),
		mcp.WithString(
			"query",
			mcp.Required(),
			nonEmpty(),
			mcp.Description("Search term to match against project names"),
		),
		limitParam(repology.MaxSearchLimit),
		mcp.WithString("maintainer", mcp.Description("Only include projects with packages maintained by this person")),
		mcp.WithString("category", mcp.Description("Only include projects in this category")),
		mcp.WithString("inrepo", mcp.Description("Only include projects and packages present in this repository")),
		mcp.WithString("notinrepo", mcp.Description("Only include projects absent from this repository")),
	}

	return mcp.NewTool(string(repology.OperationSearchProjects), append(opts, readOnly()...)...)
}

func getProjectTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Get every package of a specific project, matched by exact name."),
		mcp.WithString(
			"project_name",
			mcp.Required(),
			nonEmpty(),
			mcp.Description("Exact name of the project, e.g. 'firefox'"),
		),
		mcp.WithString("repository", mcp.Description("Only include packages from this repository")),
	}

	return mcp.NewTool(string(repology.OperationGetProject), append(opts, readOnly()...)...)
}

func listProjectsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List projects in name order, one page at a time, with optional filters."),
		mcp.WithString("start_from", mcp.Description("Project name to start listing from (pagination cursor)")),
		mcp.WithString("end_at", mcp.Description("Project name to end listing at")),
		limitParam(repology.MaxListLimit),
		mcp.WithString("maintainer", mcp.Description("Only include projects with packages maintained by this person")),
		mcp.WithString("category", mcp.Description("Only include projects in this category")),
		mcp.WithString("inrepo", mcp.Description("Only include projects and packages present in this repository")),
		mcp.WithString("notinrepo", mcp.Description("Only include projects absent from this repository")),
		mcp.WithString("repos", mcp.Description("Number of repositories a project is in, e.g. '1', '5-', '-5', '2-7'")),
		mcp.WithString("families", mcp.Description("Number of repository families a project is in, same syntax as repos")),
		mcp.WithBoolean("newest", mcp.Description("Only include projects which are newest in at least one repository")),
		mcp.WithBoolean("outdated", mcp.Description("Only include projects which are outdated in at least one repository")),
		mcp.WithBoolean("problematic", mcp.Description("Only include projects with problems in at least one repository")),
	}

	return mcp.NewTool(string(repology.OperationListProjects), append(opts, readOnly()...)...)
}

func repositoryProblemsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Get problems reported for packages in a repository."),
		mcp.WithString(
			"repository",
			mcp.Required(),
			nonEmpty(),
			mcp.Description("Repository name, e.g. 'freebsd' or 'debian_13'"),
		),
		mcp.WithString("start_from", mcp.Description("Project name to start from (pagination cursor)")),
	}

	return mcp.NewTool(string(repology.OperationRepositoryProblems), append(opts, readOnly()...)...)
}

func maintainerProblemsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Get problems reported for packages maintained by a person."),
		mcp.WithString(
			"maintainer",
			mcp.Required(),
			nonEmpty(),
			mcp.Description("Maintainer identifier, usually an email address"),
		),
		mcp.WithString("repository", mcp.Description("Only include problems from this repository")),
		mcp.WithString("start_from", mcp.Description("Project name to start from (pagination cursor)")),
	}

	return mcp.NewTool(string(repology.OperationMaintainerProblems), append(opts, readOnly()...)...)
}
