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

// NewProblemsCmd creates the 'problems' command group.
func NewProblemsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCommand := &cobra.Command{
		Use:   "problems <command>",
		Short: "Shows packaging problems reported by Repology.",
		Long: `Shows packaging problems reported by Repology, such as dead homepages or
missing CPE information, for a repository or for the packages of a maintainer.`,
	}

	fns := []func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewRepositoryProblemsCmd,
		NewMaintainerProblemsCmd,
	}

	for _, fn := range fns {
		subCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCommand.AddCommand(subCmd)
	}

	return cobraCommand, nil
}

type RepositoryProblemsCmd struct {
	*queryCmd
	StartFrom string
}

func NewRepositoryProblemsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	q, err := newQueryCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	c := &RepositoryProblemsCmd{
		queryCmd: q,
	}

	cobraCommand := &cobra.Command{
		Use:     "repository <repository>",
		Short:   "Shows problems reported for packages in a repository.",
		Example: `  repology-mcp problems repository freebsd --start-from firefox`,
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}

	cobraCommand.Flags().StringVar(&c.StartFrom, "start-from", "", "Project name to start from (pagination cursor)")
	c.addFormatFlag(cobraCommand)

	return cobraCommand, nil
}

func (c *RepositoryProblemsCmd) run(cmd *cobra.Command, args []string) error {
	repo := strings.TrimSpace(args[0])
	if repo == "" {
		return fmt.Errorf("repository is required and cannot be empty")
	}

	req := repology.RepositoryProblemsRequest{Repository: repo, StartFrom: c.StartFrom}

	return renderResults[repology.Problem](
		cmd.OutOrStdout(),
		c.format,
		printer.NewProblemPrinter(),
		fmt.Sprintf("No problems found for repository '%s'", repo),
		func() ([]repology.Problem, error) {
			client, err := c.client()
			if err != nil {
				return nil, err
			}
			defer func() { _ = client.Close() }()

			return client.RepositoryProblems(cmd.Context(), req)
		},
	)
}

type MaintainerProblemsCmd struct {
	*queryCmd
	Repository string
	StartFrom  string
}

func NewMaintainerProblemsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	q, err := newQueryCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	c := &MaintainerProblemsCmd{
		queryCmd: q,
	}

	cobraCommand := &cobra.Command{
		Use:     "maintainer <maintainer>",
		Short:   "Shows problems reported for packages maintained by a person.",
		Example: `  repology-mcp problems maintainer someone@example.org --repository freebsd`,
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}

	cobraCommand.Flags().StringVar(&c.Repository, "repository", "", "Optional, only show problems from this repository")
	cobraCommand.Flags().StringVar(&c.StartFrom, "start-from", "", "Project name to start from (pagination cursor)")
	c.addFormatFlag(cobraCommand)

	return cobraCommand, nil
}

func (c *MaintainerProblemsCmd) run(cmd *cobra.Command, args []string) error {
	maintainer := strings.TrimSpace(args[0])
	if maintainer == "" {
		return fmt.Errorf("maintainer is required and cannot be empty")
	}

	req := repology.MaintainerProblemsRequest{
		Maintainer: maintainer,
		Repository: c.Repository,
		StartFrom:  c.StartFrom,
	}

	empty := fmt.Sprintf("No problems found for maintainer '%s'", maintainer)
	if req.Repository != "" {
		empty += fmt.Sprintf(" in repository '%s'", req.Repository)
	}

	return renderResults[repology.Problem](
		cmd.OutOrStdout(),
		c.format,
		printer.NewProblemPrinter(),
		empty,
		func() ([]repology.Problem, error) {
			client, err := c.client()
			if err != nil {
				return nil, err
			}
			defer func() { _ = client.Close() }()

			return client.MaintainerProblems(cmd.Context(), req)
		},
	)
}
