package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/repology-mcp/internal/config"
	"github.com/mozilla-ai/repology-mcp/internal/server"
)

func loadConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "repology-mcp.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestServeCmd_Defaults(t *testing.T) {
	t.Parallel()

	c, cobraCmd, err := newServeCmd(newBaseCmd())
	require.NoError(t, err)

	require.Equal(t, server.TransportStdio, c.Transport)
	require.Equal(t, "stdio", cobraCmd.Flags().Lookup(flagTransport).DefValue)
	require.Equal(t, server.DefaultHost, cobraCmd.Flags().Lookup(flagHost).DefValue)
	require.Equal(t, "8000", cobraCmd.Flags().Lookup(flagPort).DefValue)
	require.Contains(t, cobraCmd.Flags().Lookup(flagTransport).Usage, "http, sse, stdio")
	require.IsType(t, &config.DefaultLoader{}, c.cfgLoader)
}

func TestServeCmd_ServerOptions(t *testing.T) {
	t.Parallel()

	cfg := loadConfig(t, `
[server]
transport = "sse"
host = "0.0.0.0"
port = 9000
shutdown_timeout = "10s"
`)

	t.Run("config values without flags", func(t *testing.T) {
		t.Parallel()

		c, cobraCmd, err := newServeCmd(newBaseCmd())
		require.NoError(t, err)
		require.NoError(t, cobraCmd.ParseFlags(nil))

		opts, err := server.NewOptions(c.serverOptions(cobraCmd, cfg)...)
		require.NoError(t, err)
		require.Equal(t, server.TransportSSE, opts.Transport)
		require.Equal(t, "0.0.0.0", opts.Host)
		require.Equal(t, 9000, opts.Port)
		require.Equal(t, 10*time.Second, opts.ShutdownTimeout)
		require.False(t, opts.CORS.Enabled)
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		c, cobraCmd, err := newServeCmd(newBaseCmd())
		require.NoError(t, err)
		require.NoError(t, cobraCmd.ParseFlags([]string{
			"--transport", "HTTP",
			"--port", "9100",
			"--cors",
			"--cors-allow-origin", "https://a.example",
			"--cors-allow-origin", "https://b.example",
			"--cors-max-age", "1m",
		}))

		opts, err := server.NewOptions(c.serverOptions(cobraCmd, cfg)...)
		require.NoError(t, err)
		require.Equal(t, server.TransportHTTP, opts.Transport)
		require.Equal(t, "0.0.0.0", opts.Host)
		require.Equal(t, 9100, opts.Port)
		require.True(t, opts.CORS.Enabled)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, opts.CORS.AllowOrigins)
		require.Equal(t, time.Minute, opts.CORS.MaxAge)
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		c, cobraCmd, err := newServeCmd(newBaseCmd())
		require.NoError(t, err)
		require.NoError(t, cobraCmd.ParseFlags(nil))

		require.Empty(t, c.serverOptions(cobraCmd, &config.Config{}))
	})
}

func TestServeCmd_InvalidTransport(t *testing.T) {
	t.Parallel()

	_, err := execute(t, NewServeCmd, []string{"--transport", "grpc"}, testOptions(&fakeClient{})...)
	require.ErrorContains(t, err, "invalid transport 'grpc'")
}

func TestServeCmd_InvalidPort(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := execute(t, NewServeCmd, []string{"--transport", "http", "--port", "70000"}, testOptions(client)...)
	require.ErrorContains(t, err, "error configuring MCP server")
	require.True(t, client.closed)
}

func TestServeCmd_Stdio(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	c, err := NewServeCmd(newBaseCmd(), testOptions(client)...)
	require.NoError(t, err)

	c.SilenceUsage = true
	c.SetIn(strings.NewReader(""))
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(nil)

	require.NoError(t, c.ExecuteContext(context.Background()))
	require.True(t, client.closed)
}

func TestServeCmd_HTTPStopsOnCancel(t *testing.T) {
	t.Parallel()

	for _, transport := range []string{"http", "sse"} {
		t.Run(transport, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{}
			c, err := NewServeCmd(newBaseCmd(), testOptions(client)...)
			require.NoError(t, err)

			stderr := &bytes.Buffer{}
			c.SilenceUsage = true
			c.SetOut(&bytes.Buffer{})
			c.SetErr(stderr)
			c.SetArgs([]string{"--transport", transport, "--host", "127.0.0.1", "--port", "0"})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			require.NoError(t, c.ExecuteContext(ctx))
			require.True(t, client.closed)
			require.Contains(t, stderr.String(), "http://127.0.0.1:0/api/v1/health")
		})
	}
}

func TestServeCmd_SkipArgumentValidation(t *testing.T) {
	t.Parallel()

	c, cobraCmd, err := newServeCmd(newBaseCmd(), testOptions(&fakeClient{})...)
	require.NoError(t, err)
	require.NoError(t, cobraCmd.ParseFlags([]string{"--skip-argument-validation"}))
	require.True(t, c.SkipArgumentValidation)

	srv, closeClient, err := c.newServer(cobraCmd)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeClient() })

	require.NotNil(t, srv.MCPServer())
	require.Equal(t, server.TransportStdio, srv.Transport())
}
