package bootstrap

import (
	"time"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
)

// Option configures the App during creation.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	settings        *config.Settings
	loader          []config.LoaderOption
	logger          *logger.Logger
	setup           []observability.SetupOption
	gracefulTimeout time.Duration
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{gracefulTimeout: 15 * time.Second}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSettings uses s instead of loading settings from files and the
// environment.
func WithSettings(s *config.Settings) Option {
	return func(o *appOptions) {
		o.settings = s
	}
}

// WithLoaderOptions passes options to config.Load.
func WithLoaderOptions(opts ...config.LoaderOption) Option {
	return func(o *appOptions) {
		o.loader = append(o.loader, opts...)
	}
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from Settings.Logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithSetupOptions passes options to observability.Setup.
func WithSetupOptions(opts ...observability.SetupOption) Option {
	return func(o *appOptions) {
		o.setup = append(o.setup, opts...)
	}
}

// WithGracefulTimeout bounds how long Close waits for shutdown hooks.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = d
	}
}
