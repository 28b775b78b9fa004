package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/repology-mcp/internal/config"
	"github.com/mozilla-ai/repology-mcp/internal/contracts"
	"github.com/mozilla-ai/repology-mcp/internal/files"
	"github.com/mozilla-ai/repology-mcp/internal/flags"
	"github.com/mozilla-ai/repology-mcp/internal/perms"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// LoggerName is the name of the root logger.
const LoggerName = "repology-mcp"

// RepologyClient is the client used by commands.
// It is implemented by *repology.Client.
type RepologyClient interface {
	contracts.RepologyClient
	contracts.UpstreamMonitor
	io.Closer
}

// ClientBuilder creates the Repology client for a command from the loaded configuration.
type ClientBuilder interface {
	BuildClient(cfg *config.Config) (RepologyClient, error)
}

var _ ClientBuilder = (*BaseCmd)(nil)

// BaseCmd holds what every command shares: the logger and the global flags.
type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger.
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the logger for the command, creating it from the global flags on first use.
// Logs are discarded unless a log path is configured, since the stdio transport owns stdout.
func (c *BaseCmd) Logger() (hclog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	logLevel := strings.ToLower(strings.TrimSpace(flags.LogLevel))
	if logLevel == "" {
		logLevel = flags.DefaultLogLevel
	}
	level := hclog.LevelFromString(logLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level '%s'", flags.LogLevel)
	}

	var output io.Writer = io.Discard
	if logPath := strings.TrimSpace(flags.LogPath); logPath != "" {
		if err := files.EnsureParentDir(logPath); err != nil {
			return nil, fmt.Errorf("failed to create log directory (%s): %w", logPath, err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		output = f
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   LoggerName,
		Level:  level,
		Output: output,
	})

	return c.logger, nil
}

// LoadConfig loads the configuration file named by the global flags.
func (c *BaseCmd) LoadConfig(loader config.Loader) (*config.Config, error) {
	if loader == nil {
		return nil, fmt.Errorf("config loader cannot be nil")
	}

	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if logger, err := c.Logger(); err == nil && cfg.Path() != "" {
		logger.Debug("Loaded config", "path", cfg.Path())
	}

	return cfg, nil
}

// BuildClient creates a Repology client from the configuration file values.
// The --base-url flag takes precedence over the file.
func (c *BaseCmd) BuildClient(cfg *config.Config) (RepologyClient, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}

	var opts []repology.Option
	if cfg != nil {
		opts = append(opts, cfg.ClientOptions()...)
	}
	if baseURL := strings.TrimSpace(flags.BaseURL); baseURL != "" {
		opts = append(opts, repology.WithBaseURL(baseURL))
	}
	opts = append(opts, repology.WithLogger(logger))

	client, err := repology.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("error configuring Repology client: %w", err)
	}

	return client, nil
}
