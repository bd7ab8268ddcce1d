package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindPathNotFound
	KindNotIndexable
	KindUnknownLoader
	KindMissingLoader
	KindDisabledLoader
	KindDecode
	KindOptionParse
	KindAutodetectExhausted
	KindLoaderRuntime
)

// ErrPathNotFound is returned when a path segment does not exist on disk or inside a parsed value.
var ErrPathNotFound = errors.New("config not found")

// ErrNotIndexable is returned when path segments remain but the current value is a scalar.
var ErrNotIndexable = errors.New("value is not indexable")

// ErrUnknownLoader is returned when no loader is registered under a name.
var ErrUnknownLoader = errors.New("no such loader")

// ErrMissingLoader is returned when a loader name is a placeholder for an unavailable dependency.
var ErrMissingLoader = errors.New("loader is not installed")

// ErrDisabledLoader is returned when only a dangerous capability exists and it is not trusted.
var ErrDisabledLoader = errors.New("loader is disabled")

// ErrDecode is returned when the header encoding is unknown or the payload cannot be decoded.
var ErrDecode = errors.New("decode error")

// ErrOptionParse is returned when the options of a type header are malformed.
var ErrOptionParse = errors.New("malformed header options")

// ErrAutodetectExhausted is returned when no loader of the autodetect order accepted the content.
var ErrAutodetectExhausted = errors.New("no loader matched")

// ErrLoaderRuntime is returned when a format parser rejected the content.
var ErrLoaderRuntime = errors.New("loader failed")

//nolint:gochecknoglobals // read-only lookup table.
var sentinels = map[Kind]error{
	KindPathNotFound:        ErrPathNotFound,
	KindNotIndexable:        ErrNotIndexable,
	KindUnknownLoader:       ErrUnknownLoader,
	KindMissingLoader:       ErrMissingLoader,
	KindDisabledLoader:      ErrDisabledLoader,
	KindDecode:              ErrDecode,
	KindOptionParse:         ErrOptionParse,
	KindAutodetectExhausted: ErrAutodetectExhausted,
	KindLoaderRuntime:       ErrLoaderRuntime,
}

// Sentinel returns the sentinel error matching the kind, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

func (k Kind) String() string {
	sentinel := k.Sentinel()
	if sentinel == nil {
		return "unknown"
	}

	return sentinel.Error()
}

// Error is a classified conftree failure.
type Error struct {
	Kind    Kind
	Path    string // filesystem or config path involved, if any
	Loader  string // loader name involved, if any
	Message string
	Err     error
}

func (e *Error) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Kind.String())

	if e.Loader != "" {
		fmt.Fprintf(&builder, ": loader %q", e.Loader)
	}

	if e.Path != "" {
		fmt.Fprintf(&builder, ": %s", e.Path)
	}

	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}

	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}

	return builder.String()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	wrapped := make([]error, 0, 2)

	if sentinel := e.Kind.Sentinel(); sentinel != nil {
		wrapped = append(wrapped, sentinel)
	}

	if e.Err != nil {
		wrapped = append(wrapped, e.Err)
	}

	return wrapped
}

// KindOf returns the kind of the first *Error in the chain, or KindUnknown.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}

	return KindUnknown
}

// IsPathError reports whether err is a PathNotFound or NotIndexable failure.
func IsPathError(err error) bool {
	kind := KindOf(err)

	return kind == KindPathNotFound || kind == KindNotIndexable
}

// AtPath returns err with Path filled in when err is an *Error without one.
// The original error is left untouched.
func AtPath(err error, path string) error {
	var target *Error
	if !errors.As(err, &target) || target.Path != "" {
		return err
	}

	located := *target
	located.Path = path

	return &located
}

// PathNotFound reports that segment could not be resolved below path.
func PathNotFound(path, segment string) *Error {
	return &Error{
		Kind:    KindPathNotFound,
		Path:    path,
		Message: fmt.Sprintf("no entry %q", segment),
	}
}

// NotIndexable reports that segment was applied to a scalar value.
func NotIndexable(path, segment string, value any) *Error {
	return &Error{
		Kind:    KindNotIndexable,
		Path:    path,
		Message: fmt.Sprintf("cannot index %T with %q", value, segment),
	}
}

// UnknownLoader reports an unregistered loader name.
func UnknownLoader(name string) *Error {
	return &Error{Kind: KindUnknownLoader, Loader: name}
}

// MissingLoader reports a placeholder loader whose backing library is unavailable.
func MissingLoader(name, reason string) *Error {
	return &Error{Kind: KindMissingLoader, Loader: name, Message: reason}
}

// DisabledLoader reports a dangerous-only loader whose trust flag is off.
func DisabledLoader(name string) *Error {
	return &Error{
		Kind:    KindDisabledLoader,
		Loader:  name,
		Message: "enable its dangerous mode to use it",
	}
}

// Decode reports an encoding failure.
func Decode(message string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: message, Err: cause}
}

// OptionParse reports malformed header options.
func OptionParse(message string) *Error {
	return &Error{Kind: KindOptionParse, Message: message}
}

// AutodetectExhausted reports that every autodetect attempt failed; cause aggregates them.
func AutodetectExhausted(cause error) *Error {
	return &Error{Kind: KindAutodetectExhausted, Err: cause}
}

// LoaderRuntime wraps an error raised by the named loader's parser.
func LoaderRuntime(name string, cause error) *Error {
	return &Error{Kind: KindLoaderRuntime, Loader: name, Err: cause}
}
