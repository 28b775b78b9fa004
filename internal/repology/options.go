package repology

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultBaseURL is the base URL of the public Repology API.
	DefaultBaseURL = "https://repology.org/api/v1"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "repology-mcp (+https://github.com/mozilla-ai/repology-mcp)"
)

// Options contains optional configuration for the Client.
// NewOptions should be used to create instances of Options.
type Options struct {
	// BaseURL is the API root that request paths are joined onto.
	BaseURL string

	// HTTPClient is used to issue requests. When nil, a client is built from the remaining options.
	HTTPClient *http.Client

	// Timeout bounds each request, including reading the response body.
	Timeout time.Duration

	// UserAgent is sent in the User-Agent header.
	UserAgent string

	// Logger receives request level logs.
	Logger hclog.Logger

	// RetryAttempts is the maximum number of retries after a transient failure. Zero disables retries.
	RetryAttempts int

	// RetryDelay is the constant delay between retries.
	RetryDelay time.Duration

	// BreakerThreshold is the number of consecutive failures that trips the circuit breaker.
	// Zero disables the circuit breaker.
	BreakerThreshold int64

	// DNSRefresh is the refresh interval of the DNS cache. Zero disables DNS caching.
	// Ignored when HTTPClient is set.
	DNSRefresh time.Duration

	// RateLimit is the minimum interval between two requests. Zero disables rate limiting.
	RateLimit time.Duration
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opt ...Option) (Options, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

// WithBaseURL sets the API base URL, e.g. "https://repology.org/api/v1".
func WithBaseURL(baseURL string) Option {
	return func(o *Options) error {
		baseURL = strings.TrimSpace(baseURL)
		if baseURL == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL '%s': %w", baseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base URL must use http or https, got '%s'", baseURL)
		}
		o.BaseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.HTTPClient = c
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		o.Timeout = timeout
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) error {
		ua = strings.TrimSpace(ua)
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		o.UserAgent = ua
		return nil
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithRetry enables a bounded retry policy: at most attempts retries, delay apart.
// Only transport failures, 429 and 5xx responses are retried.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(o *Options) error {
		if attempts < 0 {
			return fmt.Errorf("retry attempts cannot be negative, got %d", attempts)
		}
		if attempts > 0 && delay <= 0 {
			return fmt.Errorf("retry delay must be positive, got %v", delay)
		}
		o.RetryAttempts = attempts
		o.RetryDelay = delay
		return nil
	}
}

// WithCircuitBreaker trips a circuit breaker after threshold consecutive failures.
// While open, requests fail immediately with a TransportError.
func WithCircuitBreaker(threshold int64) Option {
	return func(o *Options) error {
		if threshold < 0 {
			return fmt.Errorf("circuit breaker threshold cannot be negative, got %d", threshold)
		}
		o.BreakerThreshold = threshold
		return nil
	}
}

// WithDNSCache caches DNS lookups, refreshing them every refresh interval until the client is closed.
func WithDNSCache(refresh time.Duration) Option {
	return func(o *Options) error {
		if refresh < 0 {
			return fmt.Errorf("DNS refresh interval cannot be negative, got %v", refresh)
		}
		o.DNSRefresh = refresh
		return nil
	}
}

// WithRateLimit spaces requests at least interval apart.
func WithRateLimit(interval time.Duration) Option {
	return func(o *Options) error {
		if interval < 0 {
			return fmt.Errorf("rate limit interval cannot be negative, got %v", interval)
		}
		o.RateLimit = interval
		return nil
	}
}

// DefaultTimeout is the default per-request timeout.
func DefaultTimeout() time.Duration {
	return 30 * time.Second
}

// defaultOptions returns Options with default values.
func defaultOptions() Options {
	return Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout(),
		UserAgent: DefaultUserAgent,
		Logger:    hclog.NewNullLogger(),
	}
}
