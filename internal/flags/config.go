package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile = "REPOLOGY_MCP_CONFIG_FILE"
	EnvVarLogPath    = "REPOLOGY_MCP_LOG_PATH"
	EnvVarLogLevel   = "REPOLOGY_MCP_LOG_LEVEL"
	EnvVarBaseURL    = "REPOLOGY_MCP_BASE_URL"

	// Defaults
	DefaultConfigFile = ""
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"
	DefaultBaseURL    = ""

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
	FlagNameBaseURL    = "base-url"
)

var (
	ConfigFile string
	LogPath    string
	LogLevel   string
	BaseURL    string
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initLogger(fs)
	initBaseURL(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			ConfigFile = DefaultConfigFile
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to optional TOML config file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for repology-mcp logs")
}

func initBaseURL(fs *pflag.FlagSet) {
	if BaseURL == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarBaseURL)); env != "" {
			BaseURL = env
		} else {
			BaseURL = DefaultBaseURL
		}
	}
	fs.StringVar(&BaseURL, FlagNameBaseURL, BaseURL, "override the Repology API base URL")
}
