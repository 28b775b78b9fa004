// Package repology provides a read-only client for the Repology package metadata API.
//
// Requests are described by a closed set of typed values (SearchProjectsRequest, GetProjectRequest,
// ListProjectsRequest, RepositoryProblemsRequest and MaintainerProblemsRequest) which are validated
// and turned into an Endpoint without any I/O. The Client issues a single GET per call and maps
// failures onto the taxonomy in internal/errors:
//
//	client, err := repology.NewClient(repology.WithTimeout(10 * time.Second))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	projects, err := client.SearchProjects(ctx, repology.SearchProjectsRequest{Query: "vim"})
//
// Nothing is cached: identical calls always reach the remote service.
package repology

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/cenk/backoff"
	"github.com/hashicorp/go-hclog"
	circuit "github.com/rubyist/circuitbreaker"
	"golang.org/x/time/rate"
)

// Client fetches and normalizes data from the Repology API.
// It holds no mutable per-call state and is safe for concurrent use.
// NewClient should be used to create instances of Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     hclog.Logger

	retryAttempts int
	retryDelay    time.Duration

	// breaker is nil unless a circuit breaker threshold is configured.
	breaker *circuit.Breaker

	// limiter is nil unless a rate limit is configured.
	limiter *rate.Limiter

	// stop releases background resources held by the transport.
	stop func()
}

// NewClient creates a new Client with the given options.
func NewClient(opt ...Option) (*Client, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:       opts.BaseURL,
		timeout:       opts.Timeout,
		userAgent:     opts.UserAgent,
		logger:        opts.Logger.Named("client"),
		retryAttempts: opts.RetryAttempts,
		retryDelay:    opts.RetryDelay,
		stop:          func() {},
	}

	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	} else {
		transport, stop := newTransport(opts.DNSRefresh)
		c.httpClient = &http.Client{Transport: transport}
		c.stop = stop
	}

	if opts.BreakerThreshold > 0 {
		c.breaker = newBreaker(opts.BreakerThreshold)
	}

	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Every(opts.RateLimit), 1)
	}

	return c, nil
}

// BaseURL returns the API base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases background resources held by the client.
func (c *Client) Close() error {
	c.stop()
	return nil
}

// SearchProjects returns projects whose name contains the query, ordered by name.
func (c *Client) SearchProjects(ctx context.Context, req SearchProjectsRequest) ([]ProjectSummary, error) {
	projects, err := fetch[projectList](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return shapeProjects(projects, req.Filters.InRepo, req.limit()), nil
}

// GetProject returns every package of the exactly-named project.
// When req.Repository is set, only packages from that repository are returned.
func (c *Client) GetProject(ctx context.Context, req GetProjectRequest) (ProjectDetail, error) {
	pkgs, err := fetch[[]Package](ctx, c, req)
	if err != nil {
		return ProjectDetail{}, err
	}
	if pkgs == nil {
		pkgs = []Package{}
	}
	if req.Repository != "" {
		pkgs = onlyRepo(pkgs, req.Repository)
	}
	return ProjectDetail{Name: req.ProjectName, Packages: pkgs}, nil
}

// ListProjects returns one page of projects, starting from req.StartFrom.
func (c *Client) ListProjects(ctx context.Context, req ListProjectsRequest) ([]ProjectSummary, error) {
	projects, err := fetch[projectList](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return shapeProjects(projects, req.Filters.InRepo, req.limit()), nil
}

// RepositoryProblems returns one page of problems reported for a repository.
func (c *Client) RepositoryProblems(ctx context.Context, req RepositoryProblemsRequest) ([]Problem, error) {
	return fetchProblems(ctx, c, req)
}

// MaintainerProblems returns one page of problems reported for a maintainer's packages.
func (c *Client) MaintainerProblems(ctx context.Context, req MaintainerProblemsRequest) ([]Problem, error) {
	return fetchProblems(ctx, c, req)
}

func fetchProblems(ctx context.Context, c *Client, req Request) ([]Problem, error) {
	problems, err := fetch[[]Problem](ctx, c, req)
	if err != nil {
		return nil, err
	}
	if problems == nil {
		problems = []Problem{}
	}
	return problems, nil
}

// shapeProjects applies the client-side repository narrowing and the result limit.
func shapeProjects(projects projectList, inRepo string, limit int) []ProjectSummary {
	result := []ProjectSummary(projects)
	if result == nil {
		result = []ProjectSummary{}
	}
	if inRepo != "" {
		result = projectsInRepo(result, inRepo)
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// fetch builds the request, issues it and decodes the JSON body into T.
func fetch[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var target T

	endpoint, err := Build(req)
	if err != nil {
		return target, err
	}

	u := endpoint.URL(c.baseURL)
	body, err := c.get(ctx, endpoint.Operation, u)
	if err != nil {
		return target, err
	}

	if err := json.Unmarshal(body, &target); err != nil {
		c.logger.Warn("Malformed response", "operation", endpoint.Operation, "url", u, "error", err)
		return target, &MalformedResponseError{URL: u, Err: err}
	}

	return target, nil
}

// get issues the GET request, retrying transient failures when a retry policy is configured.
func (c *Client) get(ctx context.Context, op Operation, u string) ([]byte, error) {
	if c.retryAttempts == 0 {
		return c.getOnce(ctx, op, u)
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.retryAttempts))
	for attempt := 1; ; attempt++ {
		body, err := c.getOnce(ctx, op, u)
		if err == nil || !isTemporary(err) {
			return body, err
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			return nil, err
		}

		c.logger.Warn("Retrying request", "operation", op, "url", u, "attempt", attempt, "delay", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &TransportError{URL: u, Err: ctx.Err()}
		case <-timer.C:
		}
	}
}

// getOnce performs a single GET request and returns the body of a 2xx response.
func (c *Client) getOnce(ctx context.Context, op Operation, u string) ([]byte, error) {
	if c.breaker != nil && !c.breaker.Ready() {
		return nil, &TransportError{URL: u, Err: errBreakerOpen}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: u, Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching", "operation", op, "url", u)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		c.logger.Debug("Request failed", "operation", op, "url", u, "error", err)
		return nil, &TransportError{URL: u, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		remoteErr := &RemoteError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Body:       string(excerpt),
		}
		if remoteErr.Temporary() {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		c.logger.Debug("Unexpected status", "operation", op, "url", u, "status", resp.StatusCode)
		return nil, remoteErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return nil, &TransportError{URL: u, Err: err}
	}

	c.recordSuccess()
	c.logger.Debug(
		"Fetched",
		"operation", op,
		"url", u,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return body, nil
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.Fail()
	}
}

func (c *Client) recordSuccess() {
	if c.breaker != nil {
		c.breaker.Success()
	}
}

// isTemporary reports whether err is worth retrying.
func isTemporary(err error) bool {
	var remoteErr *RemoteError
	if stdErrors.As(err, &remoteErr) {
		return remoteErr.Temporary()
	}

	var transportErr *TransportError
	if stdErrors.As(err, &transportErr) {
		return !stdErrors.Is(transportErr.Err, errBreakerOpen) &&
			!stdErrors.Is(transportErr.Err, context.Canceled)
	}

	return false
}
