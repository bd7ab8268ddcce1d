// Package toml provides the toml loader.
package toml

import (
	"fmt"

	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/BurntSushi/toml"
)

// Descriptor returns the toml loader.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{Name: "toml", Load: Load}
}

// Load decodes a TOML document into a map[string]any. Integers are int64,
// floats float64 and date-times time.Time or one of the toml local types.
func Load(text string, _ header.Options) (any, error) {
	document := map[string]any{}

	_, err := toml.Decode(text, &document)
	if err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}

	return document, nil
}
