package oas

import "log/slog"

const (
	// DefaultOASPath serves the augmented document.
	DefaultOASPath = "/oas"
	// DefaultAuthPath serves the authentication description stub.
	DefaultAuthPath = "/authentication"
)

// Option configures Augment and New.
type Option func(*options)

type options struct {
	oasPath  string
	authPath string
	logger   *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		oasPath:  DefaultOASPath,
		authPath: DefaultAuthPath,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithOASPath overrides the route serving the document. Default is "/oas".
func WithOASPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.oasPath = path
		}
	}
}

// WithAuthPath overrides the route serving the authentication stub.
// Default is "/authentication". The document route advertises it in the
// x-viron-authtypes-path header.
func WithAuthPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.authPath = path
		}
	}
}

// WithLogger sets a custom logger.
// If not set, slog.Default() will be used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
