package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/printer"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

type SearchCmd struct {
	*queryCmd
	Limit   int
	filters filterFlags
}

func NewSearchCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	q, err := newQueryCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	c := &SearchCmd{
		queryCmd: q,
	}

	cobraCommand := &cobra.Command{
		Use:   "search <query>",
		Short: "Searches Repology for projects whose name contains the query.",
		Long:  c.longDescription(),
		Example: `  # Find projects with 'vim' in their name
  repology-mcp search vim

  # Only show packages from FreeBSD, as JSON
  repology-mcp search vim --inrepo freebsd --format json`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cobraCommand.Flags().IntVar(
		&c.Limit,
		"limit",
		repology.DefaultLimit,
		fmt.Sprintf("Maximum number of projects to return (1-%d)", repology.MaxSearchLimit),
	)

	c.filters.add(cobraCommand, false)
	c.addFormatFlag(cobraCommand)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *SearchCmd) longDescription() string {
	return `Searches Repology for projects whose name contains the query and prints each
matching project with its packages, ordered by project name.`
}

func (c *SearchCmd) run(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query is required and cannot be empty")
	}

	req := repology.SearchProjectsRequest{
		Query:   query,
		Limit:   c.Limit,
		Filters: c.filters.ProjectFilters,
	}

	return renderResults[repology.ProjectSummary](
		cmd.OutOrStdout(),
		c.format,
		printer.NewProjectPrinter(),
		fmt.Sprintf("No projects found matching '%s'", query),
		func() ([]repology.ProjectSummary, error) {
			client, err := c.client()
			if err != nil {
				return nil, err
			}
			defer func() { _ = client.Close() }()

			return client.SearchProjects(cmd.Context(), req)
		},
	)
}
