package resolver

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/0xalexb/conftree/errs"
)

// index walks segments into value; at names the node value belongs to.
func index(value any, at string, segments []string) (any, error) {
	current := value

	for _, segment := range segments {
		next, err := step(current, at, segment)
		if err != nil {
			return nil, err
		}

		current = next
		at += "/" + segment
	}

	return current, nil
}

func step(value any, at, segment string) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		child, ok := typed[segment]
		if !ok {
			return nil, errs.PathNotFound(at, segment)
		}

		return child, nil
	case map[any]any:
		for key, child := range typed {
			if fmt.Sprint(key) == segment {
				return child, nil
			}
		}

		return nil, errs.PathNotFound(at, segment)
	case []any:
		position, ok := sequenceIndex(segment, len(typed))
		if !ok {
			return nil, errs.PathNotFound(at, segment)
		}

		return typed[position], nil
	case nil, string, []byte:
		return nil, errs.NotIndexable(at, segment, value)
	}

	return reflectStep(value, at, segment)
}

// reflectStep indexes string-keyed maps and slices of other element types
// that custom loaders may return.
func reflectStep(value any, at, segment string) (any, error) {
	reflected := reflect.ValueOf(value)

	switch reflected.Kind() { //nolint:exhaustive // everything else is a scalar
	case reflect.Map:
		if reflected.Type().Key().Kind() != reflect.String {
			return nil, errs.NotIndexable(at, segment, value)
		}

		child := reflected.MapIndex(reflect.ValueOf(segment).Convert(reflected.Type().Key()))
		if !child.IsValid() {
			return nil, errs.PathNotFound(at, segment)
		}

		return child.Interface(), nil
	case reflect.Slice, reflect.Array:
		position, ok := sequenceIndex(segment, reflected.Len())
		if !ok {
			return nil, errs.PathNotFound(at, segment)
		}

		return reflected.Index(position).Interface(), nil
	default:
		return nil, errs.NotIndexable(at, segment, value)
	}
}

// sequenceIndex parses a non-negative decimal index below length.
func sequenceIndex(segment string, length int) (int, bool) {
	if segment == "" || segment[0] == '+' || segment[0] == '-' {
		return 0, false
	}

	position, err := strconv.Atoi(segment)
	if err != nil || position >= length {
		return 0, false
	}

	return position, true
}
