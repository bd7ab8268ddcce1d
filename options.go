package conftree

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/fx"
)

// Options holds configuration settings for the configuration tree and the application.
type Options struct {
	Modules    []fx.Option
	LogLevel   string
	LogFormat  string
	Logger     *slog.Logger
	Directory  string
	Trusted    []string
	AutoOrder  []string
	Preload    []string
	Filesystem billy.Filesystem
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

func newOptions(opts []Option) Options {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogger sets the logger used by the registry, cache and resolver.
// It takes precedence over a logger found in the Fx graph.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithDirectory sets the initial config directory. Default: the working directory.
func WithDirectory(dir string) Option {
	return func(opts *Options) {
		opts.Directory = dir
	}
}

// WithTrusted enables the dangerous capability of the named loaders.
func WithTrusted(names ...string) Option {
	return func(opts *Options) {
		opts.Trusted = append(opts.Trusted, names...)
	}
}

// WithAutoOrder replaces the autodetect order.
func WithAutoOrder(names ...string) Option {
	return func(opts *Options) {
		opts.AutoOrder = append([]string(nil), names...)
	}
}

// WithPreload names paths that are loaded when the application starts.
// A path that fails to load aborts start-up.
func WithPreload(paths ...string) Option {
	return func(opts *Options) {
		opts.Preload = append(opts.Preload, paths...)
	}
}

// WithFilesystem reads the tree from filesystem instead of the host filesystem.
func WithFilesystem(filesystem billy.Filesystem) Option {
	return func(opts *Options) {
		opts.Filesystem = filesystem
	}
}
