package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/pflag"
)

// ErrUnknownOutput is returned for an --output value other than json, yaml or raw.
var ErrUnknownOutput = errors.New("unknown output format")

type outputFormat string

const (
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
	outputRaw  outputFormat = "raw"
)

var _ pflag.Value = (*outputFormat)(nil)

func (o *outputFormat) String() string {
	return string(*o)
}

func (o *outputFormat) Set(value string) error {
	switch format := outputFormat(value); format {
	case outputJSON, outputYAML, outputRaw:
		*o = format

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, value)
	}
}

func (o *outputFormat) Type() string {
	return "format"
}

// write renders value in format. Raw writes strings and bytes untouched and
// falls back to JSON for mappings and sequences.
func write(w io.Writer, format outputFormat, value any) error {
	switch format {
	case outputRaw:
		switch typed := value.(type) {
		case string:
			_, err := io.WriteString(w, typed)

			return err //nolint:wrapcheck
		case []byte:
			_, err := w.Write(typed)

			return err //nolint:wrapcheck
		case map[string]any, []any:
			return writeJSON(w, value)
		case nil:
			_, err := fmt.Fprintln(w, "null")

			return err //nolint:wrapcheck
		default:
			_, err := fmt.Fprintln(w, printable(value))

			return err //nolint:wrapcheck
		}
	case outputYAML:
		data, err := yaml.Marshal(printable(value))
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		_, err = w.Write(data)

		return err //nolint:wrapcheck
	default:
		return writeJSON(w, value)
	}
}

func writeJSON(w io.Writer, value any) error {
	options := ojg.DefaultOptions
	options.Indent = 2
	options.Sort = true

	_, err := fmt.Fprintln(w, oj.JSON(printable(value), &options))

	return err //nolint:wrapcheck
}

// printable converts values without a JSON or YAML form: complex numbers
// become strings in Go syntax and byte strings become standard base64.
func printable(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = printable(item)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = printable(item)
		}

		return out
	case complex128:
		return strconv.FormatComplex(typed, 'g', -1, 128)
	case []byte:
		return base64.StdEncoding.EncodeToString(typed)
	default:
		return value
	}
}
