package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestConfig_InitConfigFile_EnvVars(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "env var value with extra white space",
			value:    "  /custom/path/repology.toml  ",
			expected: "/custom/path/repology.toml",
		},
		{
			name:     "env var missing",
			value:    "", // Implementation uses os.Getenv which returns an empty string when missing.
			expected: DefaultConfigFile,
		},
		{
			name:     "env var only white space",
			value:    "   ",
			expected: DefaultConfigFile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarConfigFile, tc.value)
			t.Cleanup(func() {
				ConfigFile = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			initConfigFile(fs)

			require.Equal(t, tc.expected, ConfigFile)
			flag := fs.Lookup(FlagNameConfigFile)
			require.NotNil(t, flag)
			require.Equal(t, tc.expected, flag.Value.String())
		})
	}
}

func TestConfig_InitLogger_EnvVars(t *testing.T) {
	t.Setenv(EnvVarLogLevel, "  DEBUG ")
	t.Setenv(EnvVarLogPath, " /tmp/repology-mcp.log ")
	t.Cleanup(func() {
		LogLevel = ""
		LogPath = ""
	})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	initLogger(fs)

	require.Equal(t, "debug", LogLevel)
	require.Equal(t, "/tmp/repology-mcp.log", LogPath)
	require.NotNil(t, fs.Lookup(FlagNameLogLevel))
	require.NotNil(t, fs.Lookup(FlagNameLogPath))
}

func TestConfig_InitLogger_Defaults(t *testing.T) {
	t.Setenv(EnvVarLogLevel, "")
	t.Setenv(EnvVarLogPath, "")
	t.Cleanup(func() {
		LogLevel = ""
		LogPath = ""
	})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	initLogger(fs)

	require.Equal(t, DefaultLogLevel, LogLevel)
	require.Equal(t, DefaultLogPath, LogPath)
}

func TestConfig_InitBaseURL_EnvVar(t *testing.T) {
	t.Setenv(EnvVarBaseURL, " http://localhost:9999/api/v1 ")
	t.Cleanup(func() {
		BaseURL = ""
	})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	initBaseURL(fs)

	require.Equal(t, "http://localhost:9999/api/v1", BaseURL)
	flag := fs.Lookup(FlagNameBaseURL)
	require.NotNil(t, flag)
	require.Equal(t, "http://localhost:9999/api/v1", flag.Value.String())
}
