// Package json provides the json loader and the jsonc loader for JSON with
// comments and trailing commas.
//
// Integers decode to int64, other numbers to float64, objects to
// map[string]any and arrays to []any.
package json
