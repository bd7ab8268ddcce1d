// Package fetcher provides the filesystem primitives the resolver needs:
// classifying a path, reading a file and listing a directory.
//
// It works on any go-billy filesystem. Production code uses the host
// filesystem through OS; tests typically use an in-memory memfs tree.
//
// Usage:
//
//	files := fetcher.New(memfs.New())
//	kind, err := files.Kind("/etc/app/server.json")
//	data, err := files.ReadFile("/etc/app/server.json")
//
// Error Handling:
//   - Kind reports missing paths as KindMissing, not as an error
//   - ReadFile returns ErrPathIsDirectory for directories
//   - Errors include the path for easier debugging
package fetcher
