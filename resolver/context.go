package resolver

import (
	"os"
	"path/filepath"
	"sync"
)

// Context holds the directory relative paths are resolved against.
// Its methods are safe for concurrent use, but a Using scope is visible to
// every goroutine sharing the Context; use Resolver.At for per-caller roots.
type Context struct {
	mu  sync.RWMutex
	dir string
}

// NewContext returns a Context rooted at dir, made absolute against the working directory.
func NewContext(dir string) *Context {
	return &Context{dir: absolute(workingDirectory(), dir)}
}

// Get returns the current directory.
func (c *Context) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dir
}

// Set changes the current directory. A relative path is taken relative to the current one.
func (c *Context) Set(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dir = absolute(c.dir, path)
}

// Using runs fn with the directory set to path and restores the previous
// directory when fn returns or panics.
func (c *Context) Using(path string, fn func() error) error {
	c.mu.Lock()
	previous := c.dir
	c.dir = absolute(previous, path)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.dir = previous
		c.mu.Unlock()
	}()

	return fn()
}

// Abs returns path made absolute against the current directory and cleaned.
func (c *Context) Abs(path string) string {
	return absolute(c.Get(), path)
}

func absolute(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(base, path)
}

func workingDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}

	return dir
}
