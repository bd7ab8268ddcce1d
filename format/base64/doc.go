// Package base64 provides the base64 loader (alias b64), which decodes the
// payload to a []byte.
//
// Options:
//   - altchars: two characters used in place of + and /.
//   - validate: reject characters outside the alphabet instead of discarding them.
package base64
