// Package server hosts the Repology MCP tools over stdio, streamable HTTP or SSE.
package server

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/mozilla-ai/repology-mcp/internal/api"
	"github.com/mozilla-ai/repology-mcp/internal/contracts"
	"github.com/mozilla-ai/repology-mcp/internal/tools"
)

// Name is the server name advertised to MCP clients.
const Name = "repology-mcp"

// Server exposes the MCP tools on the configured transport.
// NewServer should be used to create instances of Server.
type Server struct {
	logger   hclog.Logger
	mcp      *mcpserver.MCPServer
	upstream contracts.UpstreamMonitor
	version  string
	opts     Options
}

// NewServer creates a new Server with the provided dependencies and options.
func NewServer(deps Dependencies, opt ...Option) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for server: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	logger := deps.Logger.Named("server")

	s := mcpserver.NewMCPServer(
		Name,
		deps.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(tools.LoggingMiddleware(logger.Named("calls"))),
	)
	s.AddTools(deps.Tools...)

	return &Server{
		logger:   logger,
		mcp:      s,
		upstream: deps.Upstream,
		version:  deps.Version,
		opts:     opts,
	}, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// Transport returns the transport the server is configured to serve.
func (s *Server) Transport() Transport {
	return s.opts.Transport
}

// Addr returns the "host:port" address the HTTP transports listen on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Serve runs the configured transport until ctx is canceled or an error occurs.
// in and out are only used by the stdio transport.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	switch s.opts.Transport {
	case TransportStdio:
		return s.ServeStdio(ctx, in, out)
	case TransportHTTP, TransportSSE:
		ln, err := net.Listen("tcp", s.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
		}
		return s.ServeListener(ctx, ln)
	default:
		return fmt.Errorf("unsupported transport '%s'", s.opts.Transport)
	}
}

// ServeStdio serves MCP over newline delimited JSON-RPC on in and out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	s.logger.Info("Serving MCP over stdio")

	err := stdio.Listen(ctx, in, out)
	if err != nil && !stdErrors.Is(err, context.Canceled) && !stdErrors.Is(err, io.EOF) {
		return err
	}

	s.logger.Info("Stdio transport stopped")
	return nil
}

// ServeListener serves the HTTP transport selected in the options on ln
// and blocks until ctx is canceled or the HTTP server fails.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	handler, shutdown, err := s.Handler("http://" + ln.Addr().String())
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting MCP server", "transport", s.opts.Transport, "address", ln.Addr().String())
		if s.opts.CORS.Enabled {
			s.logger.Info("CORS enabled", "origins", s.opts.CORS.AllowOrigins)
		}
		if err := srv.Serve(ln); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()

		s.logger.Info("Shutting down MCP server...")
		if err := shutdown(shutdownCtx); err != nil {
			s.logger.Warn("MCP transport shutdown failed", "error", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		s.logger.Info("Shutdown complete")
		return nil
	})

	return g.Wait()
}

// Handler builds the HTTP handler for the HTTP transport selected in the options.
// baseURL is the externally reachable URL of the server, used by SSE clients to find the message endpoint.
// The returned function shuts down the MCP transport.
func (s *Server) Handler(baseURL string) (http.Handler, func(context.Context) error, error) {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)

	if s.opts.CORS.Enabled {
		s.applyCORS(mux)
	}

	router := humachi.New(mux, huma.DefaultConfig(Name, s.version))
	if _, err := api.RegisterRoutes(router, s.upstream, s.version); err != nil {
		return nil, nil, err
	}

	switch s.opts.Transport {
	case TransportHTTP:
		streamable := mcpserver.NewStreamableHTTPServer(s.mcp, mcpserver.WithEndpointPath(MCPEndpoint))
		mux.Handle(MCPEndpoint, streamable)
		return mux, streamable.Shutdown, nil
	case TransportSSE:
		sse := mcpserver.NewSSEServer(
			s.mcp,
			mcpserver.WithBaseURL(strings.TrimSuffix(baseURL, "/")),
			mcpserver.WithSSEEndpoint(SSEEndpoint),
			mcpserver.WithMessageEndpoint(MessageEndpoint),
		)
		mux.Handle(SSEEndpoint, sse.SSEHandler())
		mux.Handle(MessageEndpoint, sse.MessageHandler())
		return mux, sse.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("transport '%s' is not served over HTTP", s.opts.Transport)
	}
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (s *Server) applyCORS(mux *chi.Mux) {
	corsOptions := cors.Options{
		AllowedOrigins:   s.opts.CORS.AllowOrigins,
		AllowedMethods:   s.opts.CORS.AllowMethods,
		AllowedHeaders:   s.opts.CORS.AllowedHeaders,
		ExposedHeaders:   s.opts.CORS.ExposedHeaders,
		AllowCredentials: s.opts.CORS.AllowCredentials,
		MaxAge:           int(s.opts.CORS.MaxAge.Seconds()),
	}

	// Handle wildcard origins properly.
	for i, origin := range corsOptions.AllowedOrigins {
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	mux.Use(cors.Handler(corsOptions))
}
