// Package ini provides the ini loader (aliases inifile, winconfig).
//
// The document must start with a section header. It loads as a mapping of
// section name to a mapping of key to string value; keys are lower-cased and
// every section inherits the keys of the default section.
//
// Options:
//   - allow_no_value: accept keys without a value; they load as "true".
//   - delimiters: JSON list of key/value delimiters, default ["=", ":"].
//   - inline_comment_prefixes: when present, strip # and ; inline comments.
//   - default_section: name of the section inherited by the others, default DEFAULT.
//   - interpolation: none or basic (the default), %(key)s references.
package ini
