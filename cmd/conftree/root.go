package main

import (
	"io"
	"log/slog"

	"github.com/0xalexb/conftree"
	"github.com/0xalexb/conftree/logging"
	"github.com/0xalexb/conftree/resolver"
	"github.com/spf13/cobra"
)

// cli holds the persistent flags and the tree built from them.
type cli struct {
	dir       string
	trusted   []string
	auto      []string
	logLevel  string
	logFormat string
	output    outputFormat

	logger *slog.Logger
	tree   *resolver.Resolver
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	state := &cli{output: outputJSON}

	root := &cobra.Command{
		Use:   "conftree",
		Short: "Read values from a configuration tree",
		Long: `conftree resolves slash-separated paths through a directory tree and
into the files it contains. Each file may declare its format on the first
line ("#type:yaml", "#type:base64:altchars=-_"); files without one are
autodetected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return state.open(stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&state.dir, "dir", "C", "", "config directory (default: working directory)")
	flags.StringSliceVar(&state.trusted, "trust", nil, "loaders allowed to run their dangerous variant")
	flags.StringSliceVar(&state.auto, "auto", nil, "autodetect order, replacing the default")
	flags.StringVar(&state.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&state.logFormat, "log-format", logging.FormatText, "log format: text or json")
	flags.Var(&state.output, "output", "output format: json, yaml or raw")

	root.AddCommand(
		newGetCommand(state),
		newQueryCommand(state),
		newEnsureCommand(state),
		newLoadersCommand(state),
		newVersionCommand(),
	)

	return root
}

func (c *cli) open(stderr io.Writer) error {
	c.logger = logging.NewLogger(logging.LoggerConfig{Level: c.logLevel, Format: c.logFormat}, stderr)

	opts := []conftree.Option{
		conftree.WithLogger(c.logger),
		conftree.WithDirectory(c.dir),
		conftree.WithTrusted(c.trusted...),
	}

	if len(c.auto) > 0 {
		opts = append(opts, conftree.WithAutoOrder(c.auto...))
	}

	tree, err := conftree.New(opts...)
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.tree = tree

	return nil
}
