package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions()
	require.NoError(t, err)

	require.Equal(t, TransportStdio, opts.Transport)
	require.Equal(t, DefaultHost, opts.Host)
	require.Equal(t, DefaultPort, opts.Port)
	require.Equal(t, DefaultShutdownTimeout(), opts.ShutdownTimeout)
	require.False(t, opts.CORS.Enabled)
	require.Equal(t, DefaultCORSAllowMethods(), opts.CORS.AllowMethods)
	require.Equal(t, DefaultCORSAllowHeaders(), opts.CORS.AllowedHeaders)
	require.Equal(t, DefaultCORSMaxAge(), opts.CORS.MaxAge)
}

func TestNewOptions_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{name: "unknown transport", opt: WithTransport("carrier-pigeon")},
		{name: "empty host", opt: WithHost(" ")},
		{name: "negative port", opt: WithPort(-1)},
		{name: "port too large", opt: WithPort(65536)},
		{name: "zero shutdown timeout", opt: WithShutdownTimeout(0)},
		{name: "negative CORS max age", opt: WithCORSMaxAge(-time.Second)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewOptions(tc.opt)
			require.Error(t, err)
		})
	}
}

func TestNewOptions_Overrides(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions(
		WithTransport("HTTP"),
		WithHost("0.0.0.0"),
		WithPort(0),
		WithCORSEnabled(true),
		WithCORSAllowOrigins([]string{"*"}),
		WithCORSAllowCredentials(true),
		WithCORSMaxAge(time.Minute),
		WithShutdownTimeout(2*time.Second),
	)
	require.NoError(t, err)

	require.Equal(t, TransportHTTP, opts.Transport)
	require.Equal(t, "0.0.0.0", opts.Host)
	require.Zero(t, opts.Port)
	require.True(t, opts.CORS.Enabled)
	require.Equal(t, []string{"*"}, opts.CORS.AllowOrigins)
	require.True(t, opts.CORS.AllowCredentials)
	require.Equal(t, time.Minute, opts.CORS.MaxAge)
	require.Equal(t, 2*time.Second, opts.ShutdownTimeout)
}

func TestTransport_Set(t *testing.T) {
	t.Parallel()

	var tr Transport
	require.NoError(t, tr.Set(" SSE "))
	require.Equal(t, TransportSSE, tr)
	require.Equal(t, "sse", tr.String())
	require.Equal(t, "transport", tr.Type())

	err := tr.Set("grpc")
	require.EqualError(t, err, "invalid transport 'grpc', must be one of http, sse, stdio")
	require.Equal(t, TransportSSE, tr)
}
