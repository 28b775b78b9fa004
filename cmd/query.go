package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/cmd/output"
	"github.com/mozilla-ai/repology-mcp/internal/config"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// queryCmd holds what the commands which query Repology directly have in common.
type queryCmd struct {
	*cmd.BaseCmd
	format        cmd.OutputFormat
	cfgLoader     config.Loader
	clientBuilder cmd.ClientBuilder
}

func newQueryCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*queryCmd, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	builder := opts.ClientBuilder
	if builder == nil {
		builder = baseCmd
	}

	return &queryCmd{
		BaseCmd:       baseCmd,
		format:        cmd.FormatText,
		cfgLoader:     opts.ConfigLoader,
		clientBuilder: builder,
	}, nil
}

func (q *queryCmd) addFormatFlag(c *cobra.Command) {
	allowedOutputFormats := cmd.AllowedOutputFormats()
	c.Flags().Var(
		&q.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowedOutputFormats.String()),
	)
}

// client loads the configuration and builds the Repology client.
func (q *queryCmd) client() (cmd.RepologyClient, error) {
	cfg, err := q.LoadConfig(q.cfgLoader)
	if err != nil {
		return nil, err
	}

	return q.clientBuilder.BuildClient(cfg)
}

// emptyMessenger is implemented by handlers which print a message when there are no results.
type emptyMessenger interface {
	SetEmptyMessage(msg string)
}

// renderResults fetches results and writes them in the requested format.
// Errors are rendered by the handler and also returned, so that the command exits non-zero.
func renderResults[T any](
	w io.Writer,
	format cmd.OutputFormat,
	p output.Printer[T],
	empty string,
	fetch func() ([]T, error),
) error {
	handler, err := cmd.FormatHandler(w, format, p)
	if err != nil {
		return err
	}
	if h, ok := handler.(emptyMessenger); ok {
		h.SetEmptyMessage(empty)
	}

	results, err := fetch()
	if err != nil {
		return handleError(handler, err)
	}

	return handler.HandleResults(results...)
}

func handleError[T any](handler output.Handler[T], err error) error {
	if hErr := handler.HandleError(err); hErr != nil && hErr != err {
		return hErr
	}
	return err
}

// filterFlags are the project filters shared by the search and list commands.
type filterFlags struct {
	repology.ProjectFilters
}

func (f *filterFlags) add(c *cobra.Command, all bool) {
	c.Flags().StringVar(&f.Maintainer, "maintainer", "", "Only include projects with packages maintained by this person")
	c.Flags().StringVar(&f.Category, "category", "", "Only include projects in this category")
	c.Flags().StringVar(&f.InRepo, "inrepo", "", "Only include projects and packages present in this repository")
	c.Flags().StringVar(&f.NotInRepo, "notinrepo", "", "Only include projects absent from this repository")

	if !all {
		return
	}

	c.Flags().StringVar(&f.Repos, "repos", "", "Number of repositories a project is in, e.g. '1', '5-', '-5', '2-7'")
	c.Flags().StringVar(&f.Families, "families", "", "Number of repository families a project is in, same syntax as --repos")
	c.Flags().BoolVar(&f.Newest, "newest", false, "Only include projects which are newest in at least one repository")
	c.Flags().BoolVar(&f.Outdated, "outdated", false, "Only include projects which are outdated in at least one repository")
	c.Flags().BoolVar(&f.Problematic, "problematic", false, "Only include projects with problems in at least one repository")
}
