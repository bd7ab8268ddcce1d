package ini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/ini.v1"
)

// ErrMissingSectionHeader is returned when a key appears before any section header.
var ErrMissingSectionHeader = errors.New("file contains no section headers")

const (
	allowNoValueOption    = "allow_no_value"
	delimitersOption      = "delimiters"
	inlineCommentsOption  = "inline_comment_prefixes"
	defaultSectionOption  = "default_section"
	interpolationOption   = "interpolation"
	defaultKeyValueDelims = "=:"
	interpolationNone     = "none"
	interpolationBasic    = "basic"
)

// Descriptor returns the ini loader.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{
		Name:    "ini",
		Aliases: []string{"inifile", "winconfig"},
		Load:    Load,
	}
}

type settings struct {
	load           ini.LoadOptions
	defaultSection string
	interpolate    bool
}

// Load parses text as an ini document.
func Load(text string, opts header.Options) (any, error) {
	cfg, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}

	err = requireSectionHeader(text)
	if err != nil {
		return nil, err
	}

	file, err := ini.LoadSources(cfg.load, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing ini: %w", err)
	}

	var defaults []*ini.Key

	defaultSection, err := file.GetSection(cfg.defaultSection)
	if err == nil {
		defaults = defaultSection.Keys()
	}

	document := make(map[string]any, len(file.Sections()))

	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}

		values := map[string]any{}

		if name != cfg.defaultSection {
			for _, key := range defaults {
				values[key.Name()] = cfg.value(key)
			}
		}

		for _, key := range section.Keys() {
			values[key.Name()] = cfg.value(key)
		}

		document[name] = values
	}

	return document, nil
}

func (s settings) value(key *ini.Key) string {
	if s.interpolate {
		return key.String()
	}

	return key.Value()
}

func parseOptions(opts header.Options) (settings, error) {
	cfg := settings{
		load: ini.LoadOptions{
			InsensitiveKeys:     true,
			IgnoreInlineComment: !opts.Has(inlineCommentsOption),
			KeyValueDelimiters:  defaultKeyValueDelims,
		},
		defaultSection: ini.DefaultSection,
		interpolate:    true,
	}

	allowNoValue, err := opts.Flag(allowNoValueOption)
	if err != nil {
		return settings{}, errs.OptionParse(err.Error())
	}

	cfg.load.AllowBooleanKeys = allowNoValue

	if opts.Has(delimitersOption) {
		delimiters, err := parseDelimiters(opts.Get(delimitersOption))
		if err != nil {
			return settings{}, err
		}

		cfg.load.KeyValueDelimiters = delimiters
	}

	if name := strings.TrimSpace(opts.Get(defaultSectionOption)); name != "" {
		cfg.defaultSection = name
	}

	switch mode := strings.ToLower(strings.TrimSpace(opts.Get(interpolationOption))); mode {
	case "", interpolationBasic:
	case interpolationNone:
		cfg.interpolate = false
	default:
		return settings{}, errs.OptionParse(fmt.Sprintf("unrecognized interpolation %q", mode))
	}

	return cfg, nil
}

// parseDelimiters reads a JSON list of single-character strings.
func parseDelimiters(raw string) (string, error) {
	parsed, err := oj.ParseString(raw)
	if err != nil {
		return "", errs.OptionParse("delimiters must be a JSON list of strings")
	}

	list, ok := parsed.([]any)
	if !ok || len(list) == 0 {
		return "", errs.OptionParse("delimiters must be a JSON list of strings")
	}

	var delimiters strings.Builder

	for _, item := range list {
		delimiter, ok := item.(string)
		if !ok || len([]rune(delimiter)) != 1 {
			return "", errs.OptionParse(fmt.Sprintf("delimiter %v must be a single character", item))
		}

		delimiters.WriteString(delimiter)
	}

	return delimiters.String(), nil
}

// requireSectionHeader rejects documents whose first meaningful line is not a section.
func requireSectionHeader(text string) error {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			return nil
		}

		return fmt.Errorf("%w: %q", ErrMissingSectionHeader, trimmed)
	}

	return nil
}
