package json

import (
	"errors"
	"fmt"

	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// ErrSyntax is returned for documents that are not strict JSON.
var ErrSyntax = errors.New("malformed json")

// Descriptors returns the json and jsonc loaders.
func Descriptors() []loader.Descriptor {
	return []loader.Descriptor{
		{Name: "json", Load: Load},
		{Name: "jsonc", Load: LoadJSONC},
	}
}

// Load parses a single JSON document.
func Load(text string, _ header.Options) (any, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("parsing json: %w", ErrSyntax)
	}

	value, err := oj.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	return value, nil
}

// LoadJSONC strips comments and trailing commas before parsing.
func LoadJSONC(text string, _ header.Options) (any, error) {
	data := jsonc.ToJSON([]byte(text))
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing jsonc: %w", ErrSyntax)
	}

	value, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing jsonc: %w", err)
	}

	return value, nil
}
