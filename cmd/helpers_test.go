package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/config"
	"github.com/mozilla-ai/repology-mcp/internal/domain"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

// fakeClient records the requests it receives and answers with canned data.
type fakeClient struct {
	mu       sync.Mutex
	requests []repology.Request
	projects []repology.ProjectSummary
	project  repology.ProjectDetail
	problems []repology.Problem
	err      error
	closed   bool
}

func (f *fakeClient) record(req repology.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *fakeClient) SearchProjects(_ context.Context, req repology.SearchProjectsRequest) ([]repology.ProjectSummary, error) {
	f.record(req)
	return f.projects, f.err
}

func (f *fakeClient) GetProject(_ context.Context, req repology.GetProjectRequest) (repology.ProjectDetail, error) {
	f.record(req)
	return f.project, f.err
}

func (f *fakeClient) ListProjects(_ context.Context, req repology.ListProjectsRequest) ([]repology.ProjectSummary, error) {
	f.record(req)
	return f.projects, f.err
}

func (f *fakeClient) RepositoryProblems(_ context.Context, req repology.RepositoryProblemsRequest) ([]repology.Problem, error) {
	f.record(req)
	return f.problems, f.err
}

func (f *fakeClient) MaintainerProblems(_ context.Context, req repology.MaintainerProblemsRequest) ([]repology.Problem, error) {
	f.record(req)
	return f.problems, f.err
}

func (f *fakeClient) Health() domain.UpstreamHealth {
	return domain.UpstreamHealth{Status: domain.HealthStatusOK, BaseURL: "http://fake", Breaker: repology.BreakerStateDisabled}
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) lastRequest(t *testing.T) repology.Request {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

type fakeBuilder struct {
	client *fakeClient
	err    error
	cfg    *config.Config
}

func (b *fakeBuilder) BuildClient(cfg *config.Config) (cmd.RepologyClient, error) {
	b.cfg = cfg
	if b.err != nil {
		return nil, b.err
	}
	return b.client, nil
}

type fakeLoader struct {
	cfg *config.Config
	err error
}

func (l *fakeLoader) Load(_ string) (*config.Config, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.cfg == nil {
		return &config.Config{}, nil
	}
	return l.cfg, nil
}

func newBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

func testOptions(client *fakeClient) []cmdopts.CmdOption {
	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(&fakeLoader{}),
		cmdopts.WithClientBuilder(&fakeBuilder{client: client}),
	}
}

type cmdConstructor func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error)

// execute runs the command built by fn with args and returns what it wrote to stdout.
func execute(t *testing.T, fn cmdConstructor, args []string, opt ...cmdopts.CmdOption) (string, error) {
	t.Helper()

	c, err := fn(newBaseCmd(), opt...)
	require.NoError(t, err)

	c.SilenceUsage = true
	c.SilenceErrors = true

	stdout := &bytes.Buffer{}
	c.SetOut(stdout)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)

	err = c.ExecuteContext(context.Background())
	return stdout.String(), err
}
