package header

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/0xalexb/conftree/errs"
)

// Prefix marks a header line. It must be the very first bytes of the file.
const Prefix = "#type:"

// EncodingOption is the option name selecting the payload encoding.
const EncodingOption = "encoding"

// ErrNotBoolean is returned by Options.Flag for values other than true/false.
var ErrNotBoolean = errors.New("not a boolean")

// Header is the parsed type directive of a file.
type Header struct {
	// Present is false when the first line is not a header; Type is then empty.
	Present  bool
	Type     string
	Encoding string
	Options  Options
}

// Parse splits raw file content into its header and decoded payload text.
// Without a header the whole content is decoded as UTF-8.
func Parse(raw []byte) (Header, string, error) {
	if !bytes.HasPrefix(raw, []byte(Prefix)) {
		text, err := Decode(raw, "")
		if err != nil {
			return Header{}, "", err
		}

		return Header{}, text, nil
	}

	line, payload := splitFirstLine(raw[len(Prefix):])
	if !utf8.Valid(line) {
		return Header{}, "", errs.Decode("header line is not valid UTF-8", nil)
	}

	head, err := ParseDirective(string(line))
	if err != nil {
		return Header{}, "", err
	}

	text, err := Decode(payload, head.Encoding)
	if err != nil {
		return Header{}, "", err
	}

	return head, text, nil
}

// ParseDirective parses the part of a header line following Prefix,
// e.g. "base64:altchars=-_;validate".
func ParseDirective(directive string) (Header, error) {
	name, rawOptions, hasOptions := strings.Cut(directive, ":")

	head := Header{
		Present:  true,
		Type:     strings.TrimSpace(name),
		Encoding: "",
		Options:  Options{},
	}

	if !hasOptions {
		return head, nil
	}

	err := parseOptions(rawOptions, &head.Options)
	if err != nil {
		return Header{}, err
	}

	if encoding, ok := head.Options.Lookup(EncodingOption); ok {
		head.Encoding = strings.TrimSpace(encoding)
		head.Options.Delete(EncodingOption)

		if head.Encoding == "" {
			return Header{}, errs.Decode("empty encoding name", nil)
		}
	}

	return head, nil
}

func splitFirstLine(data []byte) ([]byte, []byte) {
	line, rest, found := bytes.Cut(data, []byte("\n"))
	if !found {
		return bytes.TrimSuffix(data, []byte("\r")), nil
	}

	return bytes.TrimSuffix(line, []byte("\r")), rest
}

// parseOptions tokenizes "a=1;b= x ;flag". Names are trimmed, values are
// kept verbatim apart from escape decoding. Every segment needs a name, so
// "text:" and "a=1;" are rejected.
func parseOptions(text string, opts *Options) error {
	var name, value strings.Builder

	readingValue := false

	flush := func() error {
		optionName := strings.TrimSpace(name.String())
		optionValue := value.String()

		name.Reset()
		value.Reset()

		readingValue = false

		if optionName == "" {
			return errs.OptionParse(fmt.Sprintf("option without a name in %q", text))
		}

		opts.Set(optionName, unescape(optionValue))

		return nil
	}

	for index := 0; index < len(text); index++ {
		current := &name
		if readingValue {
			current = &value
		}

		char := text[index]

		switch {
		case char == '\\' && index+1 < len(text):
			next := text[index+1]
			if next != '=' && next != ';' {
				current.WriteByte(char)
			}

			current.WriteByte(next)
			index++
		case char == '=':
			if readingValue {
				return errs.OptionParse(fmt.Sprintf("double equal sign in %q", text))
			}

			readingValue = true
		case char == ';':
			err := flush()
			if err != nil {
				return err
			}
		default:
			current.WriteByte(char)
		}
	}

	return flush()
}

// unescape decodes backslash escapes (\n, \t, \xNN, \uNNNN), leaving unknown ones as written.
func unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var builder strings.Builder

	for len(text) > 0 {
		char, _, tail, err := strconv.UnquoteChar(text, 0)
		if err != nil {
			builder.WriteByte(text[0])
			text = text[1:]

			continue
		}

		builder.WriteRune(char)
		text = tail
	}

	return builder.String()
}
