package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrUnsafeTag is returned by the safe loader for tags outside the core schema.
var ErrUnsafeTag = errors.New("tag is not allowed in safe mode")

// Descriptor returns the yaml loader with both capabilities.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{
		Name:          "yaml",
		Aliases:       []string{"yml"},
		Load:          Load,
		DangerousLoad: DangerousLoad,
	}
}

// Load parses every document of text with the core schema.
func Load(text string, _ header.Options) (any, error) {
	file, err := parser.ParseBytes([]byte(text), 0)
	if err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	var checker tagChecker
	for _, doc := range file.Docs {
		ast.Walk(&checker, doc)

		if checker.err != nil {
			return nil, checker.err
		}
	}

	docs := make([]any, 0, len(file.Docs))

	for _, doc := range file.Docs {
		if doc.Body == nil {
			continue
		}

		var value any

		err := yaml.NodeToValue(doc.Body, &value)
		if err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}

		docs = append(docs, normalize(value))
	}

	return collect(docs), nil
}

// tagChecker stops the walk at the first tag that is neither the
// non-specific "!" nor in the !! namespace.
type tagChecker struct {
	err error
}

func (c *tagChecker) Visit(node ast.Node) ast.Visitor {
	if c.err != nil {
		return nil
	}

	tag, ok := node.(*ast.TagNode)
	if !ok || tag.Start == nil {
		return c
	}

	name := tag.Start.Value
	if name != "!" && !strings.HasPrefix(name, "!!") {
		c.err = fmt.Errorf("%w: %s at line %d", ErrUnsafeTag, name, tag.Start.Position.Line)

		return nil
	}

	return c
}
