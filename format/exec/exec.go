// Package exec provides the exec loader (alias shell). It has a dangerous
// capability only: the payload is run as a shell script and its standard
// output is the value.
//
// Options:
//   - shell: the interpreter command line, default "/bin/sh". The script is passed after -c.
//   - json: parse the output as JSON instead of returning it as text.
//   - keep_newline: do not strip the trailing newline of the output.
package exec

import (
	"bytes"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/kballard/go-shellquote"
	"github.com/ohler55/ojg/oj"
)

const defaultShell = "/bin/sh"

// ErrEmptyShell is returned when the shell option has no command.
var ErrEmptyShell = errors.New("shell option is empty")

// Descriptor returns the exec loader.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{
		Name:          "exec",
		Aliases:       []string{"shell"},
		DangerousLoad: Load,
	}
}

// Load runs text with the configured shell and returns what it printed.
func Load(text string, opts header.Options) (any, error) {
	argv, err := shellCommand(opts)
	if err != nil {
		return nil, err
	}

	asJSON, err := opts.Flag("json")
	if err != nil {
		return nil, errs.OptionParse(err.Error())
	}

	keepNewline, err := opts.Flag("keep_newline")
	if err != nil {
		return nil, errs.OptionParse(err.Error())
	}

	var stdout, stderr bytes.Buffer

	cmd := osexec.Command(argv[0], append(argv[1:], "-c", text)...) //nolint:gosec // running the script is the point of this loader
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		message := strings.TrimSpace(stderr.String())
		if message != "" {
			return nil, fmt.Errorf("running %s: %w: %s", argv[0], err, message)
		}

		return nil, fmt.Errorf("running %s: %w", argv[0], err)
	}

	if asJSON {
		value, err := oj.Parse(stdout.Bytes())
		if err != nil {
			return nil, fmt.Errorf("parsing output: %w", err)
		}

		return value, nil
	}

	output := stdout.String()
	if !keepNewline {
		output = strings.TrimSuffix(strings.TrimSuffix(output, "\n"), "\r")
	}

	return output, nil
}

func shellCommand(opts header.Options) ([]string, error) {
	raw, ok := opts.Lookup("shell")
	if !ok {
		return []string{defaultShell}, nil
	}

	argv, err := shellquote.Split(raw)
	if err != nil {
		return nil, errs.OptionParse(fmt.Sprintf("shell option: %v", err))
	}

	if len(argv) == 0 {
		return nil, errs.OptionParse(ErrEmptyShell.Error())
	}

	return argv, nil
}
