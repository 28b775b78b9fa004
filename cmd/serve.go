package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/config"
	"github.com/mozilla-ai/repology-mcp/internal/flags"
	"github.com/mozilla-ai/repology-mcp/internal/server"
	"github.com/mozilla-ai/repology-mcp/internal/tools"
)

const (
	flagTransport        = "transport"
	flagHost             = "host"
	flagPort             = "port"
	flagCORS             = "cors"
	flagCORSOrigin       = "cors-allow-origin"
	flagCORSCredentials  = "cors-allow-credentials"
	flagCORSMaxAge       = "cors-max-age"
	flagShutdownTimeout  = "shutdown-timeout"
	flagSkipArgValidator = "skip-argument-validation"
)

// ServeCmd should be used to represent the 'serve' command.
type ServeCmd struct {
	*cmd.BaseCmd
	Transport              server.Transport
	Host                   string
	Port                   int
	CORS                   bool
	CORSAllowOrigins       []string
	CORSAllowCredentials   bool
	CORSMaxAge             time.Duration
	ShutdownTimeout        time.Duration
	SkipArgumentValidation bool
	cfgLoader              config.Loader
	clientBuilder          cmd.ClientBuilder
}

// NewServeCmd creates a newly configured (Cobra) command.
func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	_, cobraCommand, err := newServeCmd(baseCmd, opt...)
	return cobraCommand, err
}

func newServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*ServeCmd, *cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, nil, err
	}

	builder := opts.ClientBuilder
	if builder == nil {
		builder = baseCmd
	}

	c := &ServeCmd{
		BaseCmd:       baseCmd,
		Transport:     server.TransportStdio,
		cfgLoader:     opts.ConfigLoader,
		clientBuilder: builder,
	}

	cobraCommand := &cobra.Command{
		Use:   "serve [--transport stdio|http|sse] [--host] [--port]",
		Short: "Runs the Repology MCP server.",
		Long:  c.longDescription(),
		Example: `  # Serve over stdio, for MCP clients which launch the server
  repology-mcp serve

  # Serve streamable HTTP on http://localhost:8000/mcp
  repology-mcp serve --transport http`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	allowedTransports := server.AllowedTransports()
	cobraCommand.Flags().Var(
		&c.Transport,
		flagTransport,
		fmt.Sprintf("Transport to serve MCP over (one of: %s)", allowedTransports.String()),
	)

	cobraCommand.Flags().StringVar(
		&c.Host,
		flagHost,
		server.DefaultHost,
		"Interface to bind for the http and sse transports",
	)

	cobraCommand.Flags().IntVar(
		&c.Port,
		flagPort,
		server.DefaultPort,
		"Port to listen on for the http and sse transports",
	)

	cobraCommand.Flags().BoolVar(
		&c.CORS,
		flagCORS,
		false,
		"Enable CORS for the http and sse transports",
	)

	cobraCommand.Flags().StringSliceVar(
		&c.CORSAllowOrigins,
		flagCORSOrigin,
		nil,
		"Origins allowed to make cross-origin requests (can be repeated)",
	)

	cobraCommand.Flags().BoolVar(
		&c.CORSAllowCredentials,
		flagCORSCredentials,
		false,
		"Allow credentials in cross-origin requests",
	)

	cobraCommand.Flags().DurationVar(
		&c.CORSMaxAge,
		flagCORSMaxAge,
		server.DefaultCORSMaxAge(),
		"How long browsers may cache preflight responses",
	)

	cobraCommand.Flags().DurationVar(
		&c.ShutdownTimeout,
		flagShutdownTimeout,
		server.DefaultShutdownTimeout(),
		"How long to wait for in-flight requests on shutdown",
	)

	cobraCommand.Flags().BoolVar(
		&c.SkipArgumentValidation,
		flagSkipArgValidator,
		false,
		"Skip validating tool arguments against the tool input schemas",
	)

	return c, cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *ServeCmd) longDescription() string {
	return `Runs the Repology MCP server, exposing the search_projects, get_project,
list_projects, get_repository_problems and get_maintainer_problems tools.

The http and sse transports also serve a health endpoint at /api/v1/health.
Flags take precedence over values in the config file.`
}

// serverOptions merges the config file values with the flags which were explicitly set.
func (c *ServeCmd) serverOptions(cobraCmd *cobra.Command, cfg *config.Config) []server.Option {
	opts := cfg.ServerOptions()

	changed := cobraCmd.Flags().Changed
	if changed(flagTransport) {
		opts = append(opts, server.WithTransport(c.Transport))
	}
	if changed(flagHost) {
		opts = append(opts, server.WithHost(c.Host))
	}
	if changed(flagPort) {
		opts = append(opts, server.WithPort(c.Port))
	}
	if changed(flagCORS) {
		opts = append(opts, server.WithCORSEnabled(c.CORS))
	}
	if changed(flagCORSOrigin) {
		opts = append(opts, server.WithCORSAllowOrigins(c.CORSAllowOrigins))
	}
	if changed(flagCORSCredentials) {
		opts = append(opts, server.WithCORSAllowCredentials(c.CORSAllowCredentials))
	}
	if changed(flagCORSMaxAge) {
		opts = append(opts, server.WithCORSMaxAge(c.CORSMaxAge))
	}
	if changed(flagShutdownTimeout) {
		opts = append(opts, server.WithShutdownTimeout(c.ShutdownTimeout))
	}

	return opts
}

// newServer wires the Repology client, the tools and the MCP server together.
// The returned function releases the client.
func (c *ServeCmd) newServer(cobraCmd *cobra.Command) (*server.Server, func() error, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return nil, nil, err
	}

	client, err := c.clientBuilder.BuildClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	toolset, err := tools.NewToolset(
		client,
		tools.WithLogger(logger),
		tools.WithArgumentValidation(!c.SkipArgumentValidation),
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("error configuring tools: %w", err)
	}

	serverTools, err := toolset.ServerTools()
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("error configuring tools: %w", err)
	}

	deps, err := server.NewDependencies(logger, serverTools, client, Version())
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	srv, err := server.NewServer(deps, c.serverOptions(cobraCmd, cfg)...)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("error configuring MCP server: %w", err)
	}

	return srv, client.Close, nil
}

// run is configured (via NewServeCmd) to be called by the Cobra framework when the command is executed.
func (c *ServeCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	srv, closeClient, err := c.newServer(cobraCmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeClient() }()

	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("Starting repology-mcp", "version", Version(), "tools", tools.Names())
	c.printBanner(cobraCmd.ErrOrStderr(), srv)

	if err := srv.Serve(ctx, cobraCmd.InOrStdin(), cobraCmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server exited with error", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}

// printBanner tells an interactive user where the server can be reached.
// It writes to stderr since the stdio transport owns stdout.
func (c *ServeCmd) printBanner(w io.Writer, srv *server.Server) {
	var banner string

	switch srv.Transport() {
	case server.TransportStdio:
		if !stdinIsTerminal() {
			return
		}
		banner = "repology-mcp serving MCP over stdio.\n"
	case server.TransportHTTP:
		banner = fmt.Sprintf("repology-mcp serving MCP over streamable HTTP.\n\n"+
			"  MCP endpoint:\thttp://%s%s\n"+
			"  Health:\thttp://%s/api/v1/health\n",
			srv.Addr(), server.MCPEndpoint, srv.Addr())
	case server.TransportSSE:
		banner = fmt.Sprintf("repology-mcp serving MCP over SSE.\n\n"+
			"  SSE endpoint:\thttp://%s%s\n"+
			"  Health:\thttp://%s/api/v1/health\n",
			srv.Addr(), server.SSEEndpoint, srv.Addr())
	default:
		return
	}

	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
	}

	banner += "\nPress Ctrl+C to stop.\n\n"
	_, _ = io.WriteString(w, banner)
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
