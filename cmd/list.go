package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/printer"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

type ListCmd struct {
	*queryCmd
	StartFrom string
	EndAt     string
	Limit     int
	filters   filterFlags
}

func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	q, err := newQueryCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		queryCmd: q,
	}

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists Repology projects in name order, one page at a time.",
		Long:  c.longDescription(),
		Example: `  # First page of outdated projects in Alpine edge
  repology-mcp list --inrepo alpine_edge --outdated

  # Continue from a project name
  repology-mcp list --start-from firefox --limit 50`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.StartFrom, "start-from", "", "Project name to start listing from (pagination cursor)")
	cobraCommand.Flags().StringVar(&c.EndAt, "end-at", "", "Project name to end listing at")
	cobraCommand.Flags().IntVar(
		&c.Limit,
		"limit",
		repology.DefaultLimit,
		fmt.Sprintf("Maximum number of projects to return (1-%d)", repology.MaxListLimit),
	)

	c.filters.add(cobraCommand, true)
	c.addFormatFlag(cobraCommand)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *ListCmd) longDescription() string {
	return `Lists Repology projects in name order with optional filters.
Pass the name of the last project shown to --start-from to fetch the next page.`
}

func (c *ListCmd) run(cmd *cobra.Command, _ []string) error {
	req := repology.ListProjectsRequest{
		StartFrom: c.StartFrom,
		EndAt:     c.EndAt,
		Limit:     c.Limit,
		Filters:   c.filters.ProjectFilters,
	}

	return renderResults[repology.ProjectSummary](
		cmd.OutOrStdout(),
		c.format,
		printer.NewProjectPrinter(),
		"No projects found matching the criteria",
		func() ([]repology.ProjectSummary, error) {
			client, err := c.client()
			if err != nil {
				return nil, err
			}
			defer func() { _ = client.Close() }()

			return client.ListProjects(cmd.Context(), req)
		},
	)
}
