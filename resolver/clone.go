package resolver

import "slices"

// clone deep-copies the container types produced by loaders so callers
// cannot mutate cached nodes.
func clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(typed))
		for key, item := range typed {
			copied[key] = clone(item)
		}

		return copied
	case map[any]any:
		copied := make(map[any]any, len(typed))
		for key, item := range typed {
			copied[key] = clone(item)
		}

		return copied
	case []any:
		copied := make([]any, len(typed))
		for i, item := range typed {
			copied[i] = clone(item)
		}

		return copied
	case []byte:
		return slices.Clone(typed)
	default:
		return value
	}
}
