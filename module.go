package conftree

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/conftree/config"
	"github.com/0xalexb/conftree/fetcher"
	"github.com/0xalexb/conftree/format/builtin"
	"github.com/0xalexb/conftree/loader"
	"github.com/0xalexb/conftree/logging"
	"github.com/0xalexb/conftree/resolver"

	"go.uber.org/fx"
)

// New builds a resolver with the bundled loaders from opts.
// Modules are ignored; they only matter to NewApp.
func New(opts ...Option) (*resolver.Resolver, error) {
	return build(newOptions(opts), nil)
}

func build(options Options, fallback *slog.Logger) (*resolver.Resolver, error) {
	logger := options.logger(fallback)

	registry, err := builtin.NewRegistry(options.Trusted, loader.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building loader registry: %w", err)
	}

	if options.AutoOrder != nil {
		registry.SetAutoOrder(options.AutoOrder...)
	}

	resolverOpts := []resolver.Option{resolver.WithLogger(logger)}

	if options.Directory != "" {
		resolverOpts = append(resolverOpts, resolver.WithDirectory(options.Directory))
	}

	if options.Filesystem != nil {
		resolverOpts = append(resolverOpts, resolver.WithFetcher(fetcher.New(options.Filesystem)))
	}

	return resolver.New(registry, resolverOpts...), nil
}

// logger picks the explicit logger, then fallback, then one built from
// LogLevel/LogFormat, then slog.Default.
func (o Options) logger(fallback *slog.Logger) *slog.Logger {
	switch {
	case o.Logger != nil:
		return o.Logger
	case fallback != nil:
		return fallback
	case o.LogLevel != "" || o.LogFormat != "":
		return logging.NewLogger(logging.LoggerConfig{Level: o.LogLevel, Format: o.LogFormat}, os.Stderr)
	default:
		return slog.Default()
	}
}

type moduleParams struct {
	fx.In

	Logger *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module providing *resolver.Resolver, *loader.Registry
// and config.Getter. Paths given with WithPreload are loaded in an OnStart hook.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	options := newOptions(opts)

	return fx.Module("conftree",
		fx.Provide(
			func(params moduleParams) (*resolver.Resolver, error) {
				return build(options, params.Logger)
			},
			func(tree *resolver.Resolver) *loader.Registry {
				return tree.Registry()
			},
			fx.Annotate(
				func(tree *resolver.Resolver) *resolver.Resolver {
					return tree
				},
				fx.As(new(config.Getter)),
			),
		),
		fx.Invoke(func(lifecycle fx.Lifecycle, tree *resolver.Resolver, params moduleParams) {
			logger := options.logger(params.Logger)

			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return preload(ctx, tree, options.Preload, logger)
				},
			})
		}),
	)
}

func preload(ctx context.Context, tree *resolver.Resolver, paths []string, logger *slog.Logger) error {
	for _, path := range paths {
		err := ctx.Err()
		if err != nil {
			return fmt.Errorf("preloading %s: %w", path, err)
		}

		err = tree.Ensure(path, false)
		if err != nil {
			return fmt.Errorf("preloading %s: %w", path, err)
		}

		logger.Info("config preloaded", slog.String("path", tree.Context().Abs(path)))
	}

	return nil
}
