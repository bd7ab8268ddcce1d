package scalar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
)

// ErrNotNumber is returned when text is not an integer, a float or a complex number.
var ErrNotNumber = errors.New("not a number")

// ErrNotBoolean is returned when text is neither true nor false.
var ErrNotBoolean = errors.New("not a boolean")

// ErrNotNone is returned when text is not empty, none or null.
var ErrNotNone = errors.New("not empty, none or null")

// Descriptors returns the scalar loaders.
func Descriptors() []loader.Descriptor {
	return []loader.Descriptor{
		{Name: "number", Aliases: []string{"num"}, Load: LoadNumber},
		{Name: "int", Aliases: []string{"integer"}, Load: LoadInt},
		{Name: "float", Aliases: []string{"real"}, Load: LoadFloat},
		{Name: "complex", Load: LoadComplex},
		{Name: "bool", Aliases: []string{"boolean"}, Load: LoadBool},
		{Name: "none", Aliases: []string{"null"}, Load: LoadNone},
		{Name: "text", Load: LoadText},
	}
}

// LoadNumber tries an integer, then a float, then a complex number.
func LoadNumber(text string, _ header.Options) (any, error) {
	intValue, intErr := ParseInt(text)
	if intErr == nil {
		return intValue, nil
	}

	floatValue, floatErr := ParseFloat(text)
	if floatErr == nil {
		return floatValue, nil
	}

	complexValue, complexErr := ParseComplex(text)
	if complexErr == nil {
		return complexValue, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNotNumber, strings.TrimSpace(text))
}

// LoadInt parses a base 10 integer.
func LoadInt(text string, _ header.Options) (any, error) {
	return ParseInt(text)
}

// LoadFloat parses a float.
func LoadFloat(text string, _ header.Options) (any, error) {
	return ParseFloat(text)
}

// LoadComplex parses a complex number.
func LoadComplex(text string, _ header.Options) (any, error) {
	return ParseComplex(text)
}

// ErrHexLiteral is returned for hexadecimal numeric text, which is not a number here.
var ErrHexLiteral = errors.New("hexadecimal literal")

// ErrUnderscore is returned when an underscore does not sit between two digits.
var ErrUnderscore = errors.New("misplaced underscore")

// ParseInt parses trimmed text as a base 10 int64. Underscores may separate digits.
func ParseInt(text string) (int64, error) {
	literal, err := normalize(text)
	if err != nil {
		return 0, fmt.Errorf("integer: %w", err)
	}

	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("integer: %w", err)
	}

	return value, nil
}

// ParseFloat parses trimmed text as a decimal float64.
func ParseFloat(text string) (float64, error) {
	literal, err := normalize(text)
	if err != nil {
		return 0, fmt.Errorf("float: %w", err)
	}

	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, fmt.Errorf("float: %w", err)
	}

	return value, nil
}

// ParseComplex parses trimmed text as a complex128. Both j and i mark the
// imaginary part. A bare j, as in "j" or "1-j", has magnitude one.
func ParseComplex(text string) (complex128, error) {
	literal, err := normalize(text)
	if err != nil {
		return 0, fmt.Errorf("complex: %w", err)
	}

	if len(literal) >= 2 && literal[0] == '(' && literal[len(literal)-1] == ')' {
		literal = strings.TrimSpace(literal[1 : len(literal)-1])
	}

	value, err := strconv.ParseComplex(imaginaryUnit(literal), 128)
	if err != nil {
		return 0, fmt.Errorf("complex: %w", err)
	}

	return value, nil
}

// imaginaryUnit rewrites a trailing j as i, spelling out an implicit 1.
func imaginaryUnit(literal string) string {
	last := len(literal) - 1
	if last < 0 {
		return literal
	}

	if literal[last] != 'j' && literal[last] != 'J' {
		return literal
	}

	body := literal[:last]

	switch {
	case body == "":
		return "1i"
	case body == "+" || body == "-":
		return body + "1i"
	case strings.HasSuffix(body, "+") || strings.HasSuffix(body, "-"):
		if exponent := body[len(body)-2]; exponent != 'e' && exponent != 'E' {
			return body + "1i"
		}
	}

	return body + "i"
}

// normalize trims text, rejects hexadecimal literals and drops digit separators.
func normalize(text string) (string, error) {
	literal := strings.TrimSpace(text)

	if strings.ContainsAny(literal, "xX") {
		return "", ErrHexLiteral
	}

	if !strings.Contains(literal, "_") {
		return literal, nil
	}

	for index := range len(literal) {
		if literal[index] != '_' {
			continue
		}

		if index == 0 || index == len(literal)-1 || !isDigit(literal[index-1]) || !isDigit(literal[index+1]) {
			return "", ErrUnderscore
		}
	}

	return strings.ReplaceAll(literal, "_", ""), nil
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

// LoadBool accepts true or false in any case.
func LoadBool(text string, _ header.Options) (any, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotBoolean, strings.TrimSpace(text))
	}
}

// LoadNone returns nil for blank text, none and null in any case.
func LoadNone(text string, _ header.Options) (any, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "none", "null":
		return nil, nil //nolint:nilnil // nil is the loaded value
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotNone, strings.TrimSpace(text))
	}
}

// LoadText returns the text unchanged.
func LoadText(text string, _ header.Options) (any, error) {
	return text, nil
}
