package conftree

import (
	"sync"
	"sync/atomic"

	"github.com/0xalexb/conftree/loader"
	"github.com/0xalexb/conftree/resolver"
)

//nolint:gochecknoglobals // process-wide default instance.
var (
	defaultOnce sync.Once
	defaultTree atomic.Pointer[resolver.Resolver]
)

// Default returns the process-wide resolver, created on first use over the
// host filesystem and the working directory.
func Default() *resolver.Resolver {
	defaultOnce.Do(func() {
		tree, err := New()
		if err != nil {
			// the bundled loaders are static; registration cannot fail
			panic(err)
		}

		defaultTree.CompareAndSwap(nil, tree)
	})

	return defaultTree.Load()
}

// SetDefault replaces the process-wide resolver used by the package-level functions.
func SetDefault(tree *resolver.Resolver) {
	if tree != nil {
		defaultTree.Store(tree)
	}
}

// Get returns the value at path, loading and caching what it needs.
func Get(path string) (any, error) {
	return Default().Get(path) //nolint:wrapcheck
}

// Ensure loads path into the cache, reloading it from disk when reload is set.
func Ensure(path string, reload bool) error {
	return Default().Ensure(path, reload) //nolint:wrapcheck
}

// ReloadTree reloads path and every file below it.
func ReloadTree(path string) error {
	return Default().ReloadTree(path) //nolint:wrapcheck
}

// Query resolves path and selects from its value with a JSONPath expression.
func Query(path, expression string) ([]any, error) {
	return Default().Query(path, expression) //nolint:wrapcheck
}

// SetConfigDirectory changes the directory relative paths are resolved against.
func SetConfigDirectory(path string) {
	Default().SetDirectory(path)
}

// GetConfigDirectory returns the current config directory.
func GetConfigDirectory() string {
	return Default().Directory()
}

// UsingConfigDirectory runs fn with the config directory temporarily set to path.
// The change is process-wide: other goroutines resolving relative paths through
// the default instance see path until fn returns. Code that needs its own root
// should use At instead.
func UsingConfigDirectory(path string, fn func() error) error {
	return Default().UsingDirectory(path, fn) //nolint:wrapcheck
}

// At returns a resolver over the default cache whose directory is fixed to dir.
// Unlike UsingConfigDirectory it leaves the shared directory untouched.
func At(dir string) *resolver.Resolver {
	return Default().At(dir)
}

// Loaders returns the default registry.
func Loaders() *loader.Registry {
	return Default().Registry()
}
