package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xalexb/conftree/header"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envTag  = "!env"
	fileTag = "!file"
)

// ErrUndefinedEnv is returned when an !env tag names an unset variable.
var ErrUndefinedEnv = errors.New("environment variable is not set")

// DangerousLoad parses every document of text, expanding !env and !file tags.
func DangerousLoad(text string, _ header.Options) (any, error) {
	decoder := yamlv3.NewDecoder(strings.NewReader(text))

	var docs []any

	for {
		var node yamlv3.Node

		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}

		err = expand(&node)
		if err != nil {
			return nil, err
		}

		var value any

		err = node.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}

		docs = append(docs, normalize(value))
	}

	return collect(docs), nil
}

// expand replaces tagged scalars in place with the text they refer to.
func expand(node *yamlv3.Node) error {
	if node.Kind == yamlv3.ScalarNode {
		switch node.Tag {
		case envTag:
			value, ok := os.LookupEnv(node.Value)
			if !ok {
				return fmt.Errorf("line %d: %w: %s", node.Line, ErrUndefinedEnv, node.Value)
			}

			setString(node, value)
		case fileTag:
			content, err := os.ReadFile(node.Value)
			if err != nil {
				return fmt.Errorf("line %d: reading %s: %w", node.Line, node.Value, err)
			}

			setString(node, string(content))
		}

		return nil
	}

	for _, child := range node.Content {
		err := expand(child)
		if err != nil {
			return err
		}
	}

	return nil
}

func setString(node *yamlv3.Node, value string) {
	node.Tag = "!!str"
	node.Value = value
	node.Style = 0
}
