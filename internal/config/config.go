// Package config loads the optional TOML configuration file.
//
// Every value is optional; values which are not set leave the corresponding defaults
// (or command line flags) in place.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mozilla-ai/repology-mcp/internal/files"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
	"github.com/mozilla-ai/repology-mcp/internal/server"
)

// Config is the configuration file.
//
// NOTE: if you add/remove fields you must review validate, ClientOptions and ServerOptions.
type Config struct {
	Repology *RepologySection `toml:"repology,omitempty"`
	Server   *ServerSection   `toml:"server,omitempty"`

	path string
}

// RepologySection configures the Repology API client.
type RepologySection struct {
	// BaseURL of the Repology API, e.g. "https://repology.org/api/v1".
	BaseURL *string `toml:"base_url,omitempty"`

	// UserAgent sent with every request.
	UserAgent *string `toml:"user_agent,omitempty"`

	// Timeout for a single request.
	Timeout *Duration `toml:"timeout,omitempty"`

	// RetryAttempts enables retries of transient failures when positive.
	RetryAttempts *int `toml:"retry_attempts,omitempty"`

	// RetryDelay between retries.
	RetryDelay *Duration `toml:"retry_delay,omitempty"`

	// BreakerThreshold enables the circuit breaker when positive.
	BreakerThreshold *int64 `toml:"breaker_threshold,omitempty"`

	// DNSRefresh enables DNS caching when positive.
	DNSRefresh *Duration `toml:"dns_refresh,omitempty"`

	// RateLimit is the minimum interval between two requests.
	RateLimit *Duration `toml:"rate_limit,omitempty"`
}

// ServerSection configures the MCP server.
type ServerSection struct {
	// Transport is one of stdio, http or sse.
	Transport *string `toml:"transport,omitempty"`

	Host *string `toml:"host,omitempty"`
	Port *int    `toml:"port,omitempty"`

	// ShutdownTimeout for graceful shutdown of the HTTP transports.
	ShutdownTimeout *Duration `toml:"shutdown_timeout,omitempty"`

	CORS *CORSSection `toml:"cors,omitempty"`
}

// CORSSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSSection struct {
	Enable      *bool     `toml:"enable,omitempty"`
	Origins     []string  `toml:"allow_origins,omitempty"`
	Credentials *bool     `toml:"allow_credentials,omitempty"`
	MaxAge      *Duration `toml:"max_age,omitempty"`
}

// DefaultRetryDelay is used when retries are enabled without a retry_delay.
func DefaultRetryDelay() time.Duration {
	return time.Second
}

// Loader loads configuration from a file path.
type Loader interface {
	Load(path string) (*Config, error)
}

// DefaultLoader loads TOML configuration files.
// An empty path falls back to the user-specific config file (see files.UserConfigFile) when it exists,
// otherwise it yields an empty configuration, so that every setting falls back to its default.
type DefaultLoader struct{}

func (l *DefaultLoader) Load(path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}

	userFile, err := files.UserConfigFile()
	if err != nil {
		// No usable home or XDG directory: run with defaults.
		return &Config{}, nil
	}
	if _, err := os.Stat(userFile); err != nil {
		return &Config{}, nil
	}

	return Load(userFile)
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: config file cannot be found (%s)", ErrConfigLoadFailed, path)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrConfigLoadFailed, ErrInvalidKey, strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.path = path

	return &cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) validate() error {
	if r := c.Repology; r != nil {
		if r.RetryAttempts != nil && *r.RetryAttempts < 0 {
			return NewErrInvalidValue("repology.retry_attempts", fmt.Sprint(*r.RetryAttempts))
		}
		if r.BreakerThreshold != nil && *r.BreakerThreshold < 0 {
			return NewErrInvalidValue("repology.breaker_threshold", fmt.Sprint(*r.BreakerThreshold))
		}
		for key, d := range map[string]*Duration{
			"repology.timeout":     r.Timeout,
			"repology.retry_delay": r.RetryDelay,
			"repology.dns_refresh": r.DNSRefresh,
			"repology.rate_limit":  r.RateLimit,
		} {
			if d.Value() < 0 {
				return NewErrInvalidValue(key, d.String())
			}
		}
	}

	if s := c.Server; s != nil {
		if s.Transport != nil {
			var t server.Transport
			if err := t.Set(*s.Transport); err != nil {
				return fmt.Errorf("%w: 'server.transport': %w", ErrInvalidValue, err)
			}
		}
		if s.Port != nil && (*s.Port < 0 || *s.Port > 65535) {
			return NewErrInvalidValue("server.port", fmt.Sprint(*s.Port))
		}
		if s.ShutdownTimeout != nil && s.ShutdownTimeout.Value() <= 0 {
			return NewErrInvalidValue("server.shutdown_timeout", s.ShutdownTimeout.String())
		}
	}

	return nil
}

// ClientOptions returns the Repology client options for every value set in the file.
func (c *Config) ClientOptions() []repology.Option {
	r := c.Repology
	if r == nil {
		return nil
	}

	var opts []repology.Option
	if r.BaseURL != nil {
		opts = append(opts, repology.WithBaseURL(*r.BaseURL))
	}
	if r.UserAgent != nil {
		opts = append(opts, repology.WithUserAgent(*r.UserAgent))
	}
	if r.Timeout != nil {
		opts = append(opts, repology.WithTimeout(r.Timeout.Value()))
	}
	if r.RetryAttempts != nil {
		delay := DefaultRetryDelay()
		if r.RetryDelay != nil {
			delay = r.RetryDelay.Value()
		}
		opts = append(opts, repology.WithRetry(*r.RetryAttempts, delay))
	}
	if r.BreakerThreshold != nil {
		opts = append(opts, repology.WithCircuitBreaker(*r.BreakerThreshold))
	}
	if r.DNSRefresh != nil {
		opts = append(opts, repology.WithDNSCache(r.DNSRefresh.Value()))
	}
	if r.RateLimit != nil {
		opts = append(opts, repology.WithRateLimit(r.RateLimit.Value()))
	}

	return opts
}

// ServerOptions returns the server options for every value set in the file.
func (c *Config) ServerOptions() []server.Option {
	s := c.Server
	if s == nil {
		return nil
	}

	var opts []server.Option
	if s.Transport != nil {
		opts = append(opts, server.WithTransport(server.Transport(*s.Transport)))
	}
	if s.Host != nil {
		opts = append(opts, server.WithHost(*s.Host))
	}
	if s.Port != nil {
		opts = append(opts, server.WithPort(*s.Port))
	}
	if s.ShutdownTimeout != nil {
		opts = append(opts, server.WithShutdownTimeout(s.ShutdownTimeout.Value()))
	}

	if cors := s.CORS; cors != nil {
		if cors.Enable != nil {
			opts = append(opts, server.WithCORSEnabled(*cors.Enable))
		}
		if cors.Origins != nil {
			opts = append(opts, server.WithCORSAllowOrigins(cors.Origins))
		}
		if cors.Credentials != nil {
			opts = append(opts, server.WithCORSAllowCredentials(*cors.Credentials))
		}
		if cors.MaxAge != nil {
			opts = append(opts, server.WithCORSMaxAge(cors.MaxAge.Value()))
		}
	}

	return opts
}
