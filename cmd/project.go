package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/printer"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

type ProjectCmd struct {
	*queryCmd
	Repository string
}

func NewProjectCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	q, err := newQueryCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	c := &ProjectCmd{
		queryCmd: q,
	}

	cobraCommand := &cobra.Command{
		Use:   "project <name>",
		Short: "Shows every package of a project, matched by exact name.",
		Long:  c.longDescription(),
		Example: `  # All packages of firefox
  repology-mcp project firefox

  # Only the Debian 13 package
  repology-mcp project firefox --repository debian_13`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Repository,
		"repository",
		"",
		"Optional, only show packages from this repository",
	)

	c.addFormatFlag(cobraCommand)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *ProjectCmd) longDescription() string {
	return `Shows every package of a project known to Repology, with the repository,
package name, version and version status of each.`
}

func (c *ProjectCmd) run(cobraCmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("project name is required and cannot be empty")
	}

	handler, err := cmd.FormatHandler[repology.ProjectDetail](
		cobraCmd.OutOrStdout(),
		c.format,
		printer.NewProjectDetailPrinter(),
	)
	if err != nil {
		return err
	}

	client, err := c.client()
	if err != nil {
		return handleError(handler, err)
	}
	defer func() { _ = client.Close() }()

	req := repology.GetProjectRequest{ProjectName: name, Repository: c.Repository}
	project, err := client.GetProject(cobraCmd.Context(), req)
	if err != nil {
		return handleError(handler, err)
	}

	if len(project.Packages) == 0 && c.format == cmd.FormatText {
		msg := fmt.Sprintf("No packages found for project '%s'", name)
		if req.Repository != "" {
			msg += fmt.Sprintf(" in repository '%s'", req.Repository)
		}
		_, err := io.WriteString(cobraCmd.OutOrStdout(), msg+"\n")
		return err
	}

	return handler.HandleResult(project)
}
