package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultHost is the default interface the HTTP transports bind to.
	DefaultHost = "localhost"

	// DefaultPort is the default port the HTTP transports listen on.
	DefaultPort = 8000

	// MCPEndpoint is the path of the streamable HTTP endpoint.
	MCPEndpoint = "/mcp"

	// SSEEndpoint is the path clients open the SSE stream on.
	SSEEndpoint = "/sse"

	// MessageEndpoint is the path SSE clients post messages to.
	MessageEndpoint = "/message"
)

// Options contains optional configuration for the Server.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Transport selects stdio, streamable HTTP or SSE.
	Transport Transport

	// Host is the interface the HTTP transports bind to.
	Host string

	// Port is the port the HTTP transports listen on.
	Port int

	// CORS configuration for cross-origin requests, only used by the HTTP transports.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	ShutdownTimeout time.Duration
}

// CORSConfig defines Cross-Origin Resource Sharing settings for the HTTP transports.
type CORSConfig struct {
	// Enabled determines whether CORS headers are added to responses.
	Enabled bool

	// AllowCredentials indicates whether the request can include credentials.
	// Must be false when AllowOrigins contains "*"
	AllowCredentials bool

	// AllowedHeaders specifies which headers the client can include in requests.
	AllowedHeaders []string

	// AllowMethods specifies which HTTP methods are permitted.
	AllowMethods []string

	// AllowOrigins specifies which origins can access the server.
	AllowOrigins []string

	// ExposedHeaders specifies which response headers are accessible to the client.
	ExposedHeaders []string

	// MaxAge specifies how long browsers can cache preflight responses.
	MaxAge time.Duration
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opt ...Option) (Options, error) {
	options := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithTransport selects the transport.
func WithTransport(transport Transport) Option {
	return func(o *Options) error {
		if err := transport.Set(string(transport)); err != nil {
			return err
		}
		o.Transport = transport
		return nil
	}
}

// WithHost sets the interface the HTTP transports bind to.
func WithHost(host string) Option {
	return func(o *Options) error {
		host = strings.TrimSpace(host)
		if host == "" {
			return fmt.Errorf("host cannot be empty")
		}
		o.Host = host
		return nil
	}
}

// WithPort sets the port the HTTP transports listen on. Zero picks a free port.
func WithPort(port int) Option {
	return func(o *Options) error {
		if port < 0 || port > 65535 {
			return fmt.Errorf("port must be between 0 and 65535, got %d", port)
		}
		o.Port = port
		return nil
	}
}

// WithCORSEnabled enables or disables CORS support.
func WithCORSEnabled(enabled bool) Option {
	return func(o *Options) error {
		o.CORS.Enabled = enabled
		return nil
	}
}

// WithCORSAllowOrigins sets the allowed origins for CORS requests.
func WithCORSAllowOrigins(origins []string) Option {
	return func(o *Options) error {
		o.CORS.AllowOrigins = origins
		return nil
	}
}

// WithCORSAllowCredentials sets whether credentials are allowed in CORS requests.
func WithCORSAllowCredentials(allowed bool) Option {
	return func(o *Options) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithCORSMaxAge sets how long browsers can cache CORS preflight responses.
func WithCORSMaxAge(maxAge time.Duration) Option {
	return func(o *Options) error {
		if maxAge < 0 {
			return fmt.Errorf("CORS max age cannot be negative, got %v", maxAge)
		}
		o.CORS.MaxAge = maxAge
		return nil
	}
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// DefaultCORSAllowHeaders returns the headers MCP clients need to send.
func DefaultCORSAllowHeaders() []string {
	return []string{
		"Accept",
		"Authorization",
		"Content-Type",
		"Last-Event-ID",
		"Mcp-Protocol-Version",
		"Mcp-Session-Id",
	}
}

// DefaultCORSAllowMethods returns the HTTP methods used by the MCP transports.
func DefaultCORSAllowMethods() []string {
	return []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	}
}

// DefaultCORSExposeHeaders returns the response headers MCP clients need to read.
func DefaultCORSExposeHeaders() []string {
	return []string{"Mcp-Session-Id"}
}

// DefaultCORSMaxAge returns the default CORS max age duration.
// Max age is the default time browsers can cache preflight responses.
func DefaultCORSMaxAge() time.Duration {
	return 5 * time.Minute
}

// DefaultShutdownTimeout is the default time allowed for graceful shutdown.
func DefaultShutdownTimeout() time.Duration {
	return 5 * time.Second
}

func defaultOptions() Options {
	return Options{
		Transport: TransportStdio,
		Host:      DefaultHost,
		Port:      DefaultPort,
		CORS: CORSConfig{
			Enabled:          false,
			AllowOrigins:     nil,
			AllowMethods:     DefaultCORSAllowMethods(),
			AllowedHeaders:   DefaultCORSAllowHeaders(),
			AllowCredentials: false,
			ExposedHeaders:   DefaultCORSExposeHeaders(),
			MaxAge:           DefaultCORSMaxAge(),
		},
		ShutdownTimeout: DefaultShutdownTimeout(),
	}
}
