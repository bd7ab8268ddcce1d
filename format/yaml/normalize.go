package yaml

import (
	"fmt"
	"math"
)

// normalize converts decoded YAML values to int64 integers and string-keyed mappings.
func normalize(value any) any {
	switch typed := value.(type) {
	case int:
		return int64(typed)
	case uint64:
		if typed > math.MaxInt64 {
			return float64(typed)
		}

		return int64(typed)
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}

		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[fmt.Sprint(key)] = normalize(item)
		}

		return converted
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item)
		}

		return typed
	default:
		return value
	}
}

func collect(docs []any) any {
	switch len(docs) {
	case 0:
		return map[string]any{}
	case 1:
		return docs[0]
	default:
		return docs
	}
}
