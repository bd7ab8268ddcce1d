package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/0xalexb/conftree"
	"github.com/spf13/cobra"
)

func newGetCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH...",
		Short: "Print the value at each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				value, err := state.tree.Get(path)
				if err != nil {
					return err //nolint:wrapcheck
				}

				err = write(cmd.OutOrStdout(), state.output, value)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newQueryCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "query PATH EXPR",
		Short: "Select from the value at PATH with a JSONPath expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := state.tree.Query(args[0], args[1])
			if err != nil {
				return err //nolint:wrapcheck
			}

			return write(cmd.OutOrStdout(), state.output, matches)
		},
	}
}

func newEnsureCommand(state *cli) *cobra.Command {
	var reload, recursive bool

	cmd := &cobra.Command{
		Use:   "ensure PATH...",
		Short: "Load each path, reporting the first error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				var err error

				if recursive {
					err = state.tree.ReloadTree(path)
				} else {
					err = state.tree.Ensure(path, reload)
				}

				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintln(cmd.OutOrStdout(), state.tree.Context().Abs(path))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&reload, "reload", false, "re-read the path even if it is cached")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "reload the path and every file below it")

	return cmd
}

func newLoadersCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "loaders",
		Short: "List registered loaders and their trust state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := state.tree.Registry()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tSAFE\tDANGEROUS\tTRUSTED\tSTATUS")

			for _, info := range registry.Loaders() {
				status := "ok"
				if info.Missing != "" {
					status = "missing: " + info.Missing
				}

				fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\t%s\n",
					info.Name, strings.Join(info.Aliases, ","), info.Safe, info.Dangerous, info.Trusted, status)
			}

			err := w.Flush()
			if err != nil {
				return err //nolint:wrapcheck
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nautodetect: %s\n", strings.Join(registry.AutoOrder(), ", "))

			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "conftree %s (compiled %s)\n", conftree.Version, conftree.CompiledAt)
		},
	}
}
