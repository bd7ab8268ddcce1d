package header

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/0xalexb/conftree/errs"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Decode converts payload to text using the named encoding; "" means UTF-8.
// Unknown encodings and undecodable bytes are reported as errs.KindDecode.
func Decode(payload []byte, encodingName string) (string, error) {
	if encodingName == "" || isUTF8(encodingName) {
		return decodeUTF8(payload)
	}

	enc, err := ianaindex.IANA.Encoding(encodingName)
	if err != nil {
		return "", errs.Decode(fmt.Sprintf("unknown encoding %q", encodingName), err)
	}

	if enc == nil {
		return "", errs.Decode(fmt.Sprintf("unsupported encoding %q", encodingName), nil)
	}

	if enc == unicode.UTF8 {
		return decodeUTF8(payload)
	}

	decoded, err := enc.NewDecoder().Bytes(payload)
	if err != nil {
		return "", errs.Decode(fmt.Sprintf("cannot decode payload as %s", encodingName), err)
	}

	// x/text decoders substitute U+FFFD for bytes the charset does not map.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errs.Decode(fmt.Sprintf("invalid byte sequence for %s", encodingName), nil)
	}

	return string(decoded), nil
}

func decodeUTF8(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", errs.Decode("payload is not valid UTF-8", nil)
	}

	return string(payload), nil
}

func isUTF8(name string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(name, "_", "-"))

	return normalized == "utf-8" || normalized == "utf8"
}
