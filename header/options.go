package header

import (
	"fmt"
	"strings"
)

// Options are the loader options of a type header, in declaration order.
// The zero value is an empty, usable set.
type Options struct {
	names  []string
	values map[string]string
}

// Set stores value under name. A repeated name keeps its first position and takes the new value.
func (o *Options) Set(name, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}

	if _, exists := o.values[name]; !exists {
		o.names = append(o.names, name)
	}

	o.values[name] = value
}

// Lookup returns the raw value of name; flags have an empty value.
func (o Options) Lookup(name string) (string, bool) {
	value, ok := o.values[name]

	return value, ok
}

// Get returns the raw value of name, or "" when absent.
func (o Options) Get(name string) string {
	return o.values[name]
}

// Has reports whether name was given, as a flag or with a value.
func (o Options) Has(name string) bool {
	_, ok := o.values[name]

	return ok
}

// Names returns option names in declaration order.
func (o Options) Names() []string {
	return append([]string(nil), o.names...)
}

// Len returns the number of options.
func (o Options) Len() int {
	return len(o.names)
}

// Delete removes name.
func (o *Options) Delete(name string) {
	if _, ok := o.values[name]; !ok {
		return
	}

	delete(o.values, name)

	for i, existing := range o.names {
		if existing == name {
			o.names = append(o.names[:i], o.names[i+1:]...)

			break
		}
	}
}

// Flag interprets name as a boolean: absent is false, a bare flag is true,
// otherwise the value must read "true" or "false" (any case).
func (o Options) Flag(name string) (bool, error) {
	value, ok := o.values[name]
	if !ok {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return true, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("option %q: %w: %q", name, ErrNotBoolean, value)
	}
}

func (o Options) String() string {
	parts := make([]string, 0, len(o.names))

	for _, name := range o.names {
		value := o.values[name]
		if value == "" {
			parts = append(parts, name)

			continue
		}

		parts = append(parts, name+"="+value)
	}

	return strings.Join(parts, ";")
}
