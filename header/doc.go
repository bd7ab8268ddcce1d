// Package header parses the optional type directive on the first line of a
// config file and decodes the remaining payload into text.
//
// A header line looks like:
//
//	#type:<name>[:<option>=<value>;<flag>;...]
//
// The encoding option selects the payload decoding (default UTF-8) and is
// not forwarded to loaders. Every other option reaches the loader verbatim
// as a string; coercion is the loader's business. Inside option text "\="
// and "\;" are literal characters, other backslash escapes in values are
// decoded ("\n", "\t", "\\", "\x41", "\u00e9").
//
// Without a header the whole blob, first line included, is the payload.
package header
