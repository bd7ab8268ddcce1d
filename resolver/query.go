package resolver

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// ErrInvalidQuery is returned when a JSONPath expression does not parse.
var ErrInvalidQuery = errors.New("invalid jsonpath")

// Query resolves path and returns the values selected by the JSONPath
// expression, in document order. No match is an empty result, not an error.
func (r *Resolver) Query(path, expression string) ([]any, error) {
	value, err := r.Get(path)
	if err != nil {
		return nil, err
	}

	return Select(value, expression)
}

// Select applies a JSONPath expression to an already resolved value.
func Select(value any, expression string) ([]any, error) {
	compiled, err := jp.ParseString(expression)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidQuery, expression, err)
	}

	results := compiled.Get(value)
	if results == nil {
		results = []any{}
	}

	return results, nil
}
