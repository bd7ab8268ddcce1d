package conftree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/conftree/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is an Fx application with the configuration tree wired in.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
// The module from NewModule is always installed; WithModules adds the caller's own.
func NewApp(opts ...Option) *App {
	options := newOptions(opts)

	return &App{
		app: configure(&options, opts),
	}
}

func configure(options *Options, opts []Option) *fx.App {
	config := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	logger := options.Logger
	if logger == nil {
		logger = logging.NewLogger(config, os.Stderr)
	}

	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(config),
		fx.Supply(logger),
		NewModule(opts...),
		fx.Options(options.Modules...),
	)
}

// Err returns the error raised while building the Fx graph, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
