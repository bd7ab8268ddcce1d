// Package yaml provides the yaml loader (alias yml).
//
// The safe capability accepts the core YAML schema only: any tag outside the
// !! namespace is rejected. The dangerous capability additionally expands
// two local tags with side effects:
//
//	token: !env API_TOKEN      # value of an environment variable
//	motd: !file /etc/motd      # contents of a file
//
// A stream with no documents loads as an empty mapping, a single document as
// its value and several documents as a sequence of their values.
package yaml
