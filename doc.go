// Package conftree reads configuration from a directory tree in which every
// file may carry its own format.
//
// A path walks directories, then continues into the parsed content of the
// first file it meets:
//
//	conftree.Get("db/port")                  // the file db/port
//	conftree.Get("server.json/listen/port")  // a key inside server.json
//	conftree.Get("db")                       // the db directory as a mapping
//
// A file names its format on the first line, "#type:yaml" or
// "#type:base64:altchars=-_"; without that line the loaders of the
// autodetect order are tried in turn. Parsed files are cached until
// Ensure(path, true) or ReloadTree asks for a reload.
//
// The package-level functions use a process-wide resolver; New builds
// independent ones and NewModule wires one into an Fx application.
package conftree
