// Package scalar provides the single-value loaders: number, int, float,
// complex, bool, none and text.
//
// Numeric loaders trim surrounding whitespace and produce int64, float64 or
// complex128. Complex literals use either the i or j imaginary suffix and may
// be parenthesized, so "(1+2j)" and "1+2i" are the same value.
package scalar
