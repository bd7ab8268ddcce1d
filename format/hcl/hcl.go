//go:build !conftree_nohcl

package hcl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/ohler55/ojg/oj"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const sourceName = "config.hcl"

// ErrUnexpectedBody is returned when the parser yields a body that is not native syntax.
var ErrUnexpectedBody = errors.New("unexpected hcl body type")

// Register installs the hcl loader.
func Register(registry *loader.Registry) error {
	return registry.Register(Descriptor()) //nolint:wrapcheck
}

// Descriptor returns the hcl loader.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{
		Name:          "hcl",
		Aliases:       []string{"tf"},
		Load:          Load,
		DangerousLoad: DangerousLoad,
	}
}

// Load evaluates the file with pure functions only.
func Load(text string, _ header.Options) (any, error) {
	return decode(text, &hcl.EvalContext{Functions: functions()})
}

// DangerousLoad evaluates the file with the process environment available as env.
func DangerousLoad(text string, _ header.Options) (any, error) {
	return decode(text, &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": environment()},
		Functions: functions(),
	})
}

func decode(text string, ctx *hcl.EvalContext) (any, error) {
	file, diags := hclsyntax.ParseConfig([]byte(text), sourceName, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing hcl: %w", diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, ErrUnexpectedBody
	}

	return bodyValue(body, ctx)
}

func bodyValue(body *hclsyntax.Body, ctx *hcl.EvalContext) (map[string]any, error) {
	document := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attribute := range body.Attributes {
		value, diags := attribute.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %w", name, diags)
		}

		converted, err := toGo(value)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", name, err)
		}

		document[name] = converted
	}

	for _, block := range body.Blocks {
		nested, err := bodyValue(block.Body, ctx)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", block.Type, err)
		}

		insert(document, append([]string{block.Type}, block.Labels...), nested)
	}

	return document, nil
}

// insert stores value under the key path, turning a repeated leaf into a sequence.
func insert(document map[string]any, keys []string, value map[string]any) {
	current := document

	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}

		current = next
	}

	leaf := keys[len(keys)-1]

	switch existing := current[leaf].(type) {
	case nil:
		current[leaf] = value
	case []any:
		current[leaf] = append(existing, value)
	default:
		current[leaf] = []any{existing, value}
	}
}

func toGo(value cty.Value) (any, error) {
	encoded, err := ctyjson.Marshal(value, value.Type())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return oj.Parse(encoded) //nolint:wrapcheck
}

func functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":       stdlib.AbsoluteFunc,
		"ceil":      stdlib.CeilFunc,
		"floor":     stdlib.FloorFunc,
		"max":       stdlib.MaxFunc,
		"min":       stdlib.MinFunc,
		"format":    stdlib.FormatFunc,
		"join":      stdlib.JoinFunc,
		"lower":     stdlib.LowerFunc,
		"replace":   stdlib.ReplaceFunc,
		"split":     stdlib.SplitFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"upper":     stdlib.UpperFunc,
		"coalesce":  stdlib.CoalesceFunc,
		"concat":    stdlib.ConcatFunc,
		"keys":      stdlib.KeysFunc,
		"length":    stdlib.LengthFunc,
		"merge":     stdlib.MergeFunc,
		"values":    stdlib.ValuesFunc,
	}
}

func environment() cty.Value {
	variables := map[string]cty.Value{}

	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if ok && hclsyntax.ValidIdentifier(name) {
			variables[name] = cty.StringVal(value)
		}
	}

	return cty.ObjectVal(variables)
}
