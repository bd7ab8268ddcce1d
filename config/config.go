package config

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Getter resolves a configuration path to its loaded value.
//
// Paths use slash (/) as the separator and cross the filesystem into file
// content transparently. For example:
//   - "server.yaml/listen" navigates to the listen key of server.yaml
//   - "db" is the whole db directory as a mapping of its files
//
// *resolver.Resolver implements Getter.
type Getter interface {
	Get(path string) (any, error)
}

// GetterFunc adapts a function to the Getter interface.
type GetterFunc func(path string) (any, error)

// Get calls f(path).
func (f GetterFunc) Get(path string) (any, error) {
	return f(path)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that resolves path, decodes the value into target,
// sets defaults, and validates it.
func Provider[T any](target *T, path string) func(Getter) (*T, error) {
	return func(getter Getter) (*T, error) {
		value, err := getter.Get(path)
		if err != nil {
			return nil, fmt.Errorf("reading config error: %w", err)
		}

		err = Decode(value, target)
		if err != nil {
			return nil, fmt.Errorf("decoding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

// Decode copies a loaded value into target, honouring yaml struct tags.
func Decode(value, target any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}
