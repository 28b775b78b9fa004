package tools

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Options contains optional configuration for the Toolset.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Logger receives tool call logs.
	Logger hclog.Logger

	// ValidateArguments checks call arguments against each tool's input schema before the handler runs.
	ValidateArguments bool
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opt ...Option) (Options, error) {
	opts := Options{
		Logger:            hclog.NewNullLogger(),
		ValidateArguments: true,
	}

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

// WithLogger sets the logger used by the tool handlers.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithArgumentValidation enables or disables input schema validation of call arguments.
func WithArgumentValidation(enabled bool) Option {
	return func(o *Options) error {
		o.ValidateArguments = enabled
		return nil
	}
}
