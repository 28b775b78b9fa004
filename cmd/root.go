package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

// Version returns the version of the binary.
func Version() string {
	return version
}

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error creating root command: %s\n", err)
		os.Exit(1)
	}

	// Create the signal handling context for the application.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

// NewRootCmd creates the root command with every sub-command attached.
// Options are passed through to each sub-command.
func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:          "repology-mcp <command> [args]",
		Short:        "MCP server and CLI for querying package metadata from Repology.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewServeCmd,
		NewSearchCmd,
		NewProjectCmd,
		NewListCmd,
		NewProblemsCmd,
	}

	for _, fn := range fns {
		subCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(subCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `'repology-mcp' exposes read-only Repology queries (project search, project
details, project listings and repository or maintainer problems) as MCP tools.

Use 'serve' to run the MCP server over stdio, streamable HTTP or SSE, or run the
query commands directly from the terminal.`
}
