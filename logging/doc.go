// Package logging builds the structured log/slog loggers used by conftree.
// Output is JSON by default; a logfmt-style text format is available for
// interactive use of the command line tool.
package logging
