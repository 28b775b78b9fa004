package options

import (
	"fmt"

	"github.com/mozilla-ai/repology-mcp/internal/cmd"
	"github.com/mozilla-ai/repology-mcp/internal/config"
)

type CmdOption func(*CmdOptions) error

// CmdOptions holds the collaborators a command depends on.
// A nil ClientBuilder means the command's own BaseCmd builds the client.
type CmdOptions struct {
	ConfigLoader  config.Loader
	ClientBuilder cmd.ClientBuilder
}

func defaultOptions() CmdOptions {
	return CmdOptions{
		ConfigLoader: &config.DefaultLoader{},
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithClientBuilder(b cmd.ClientBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("client builder cannot be nil")
		}
		o.ClientBuilder = b
		return nil
	}
}
