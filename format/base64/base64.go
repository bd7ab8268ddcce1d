package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"
)

// ErrInvalidCharacter is returned in validate mode for characters outside the alphabet.
var ErrInvalidCharacter = errors.New("invalid base64 character")

const (
	altcharsOption = "altchars"
	validateOption = "validate"
)

// Descriptor returns the base64 loader.
func Descriptor() loader.Descriptor {
	return loader.Descriptor{
		Name:    "base64",
		Aliases: []string{"b64"},
		Load:    Load,
	}
}

// Load decodes text as padded standard base64.
func Load(text string, opts header.Options) (any, error) {
	altchars := opts.Get(altcharsOption)
	if opts.Has(altcharsOption) && len(altchars) != 2 {
		return nil, errs.OptionParse(fmt.Sprintf("altchars must be two characters, got %q", altchars))
	}

	validate, err := opts.Flag(validateOption)
	if err != nil {
		return nil, errs.OptionParse(err.Error())
	}

	encoded := strings.TrimSpace(text)

	if altchars != "" {
		encoded = strings.NewReplacer(altchars[:1], "+", altchars[1:], "/").Replace(encoded)
	}

	if validate {
		index := strings.IndexFunc(encoded, func(r rune) bool { return !inAlphabet(r) })
		if index >= 0 {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, encoded[index], index)
		}
	} else {
		encoded = strings.Map(func(r rune) rune {
			if inAlphabet(r) {
				return r
			}

			return -1
		}, encoded)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}

	return decoded, nil
}

func inAlphabet(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	default:
		return r == '+' || r == '/' || r == '='
	}
}
