package resolver

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/0xalexb/conftree/cache"
	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/fetcher"
	"github.com/0xalexb/conftree/loader"
)

// Resolver resolves configuration paths against a directory context,
// loading files through a loader registry and caching parsed nodes.
type Resolver struct {
	registry *loader.Registry
	files    *fetcher.Fetcher
	store    *cache.Store
	context  *Context
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher sets the filesystem the tree is read from. Default: the host filesystem.
func WithFetcher(files *fetcher.Fetcher) Option {
	return func(r *Resolver) {
		if files != nil {
			r.files = files
		}
	}
}

// WithDirectory sets the initial directory. Default: the working directory.
func WithDirectory(dir string) Option {
	return func(r *Resolver) {
		r.context = NewContext(dir)
	}
}

// WithContext shares an existing directory context.
func WithContext(context *Context) Option {
	return func(r *Resolver) {
		if context != nil {
			r.context = context
		}
	}
}

// WithLogger sets the logger for resolver and cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver with an empty cache.
func New(registry *loader.Registry, opts ...Option) *Resolver {
	resolver := &Resolver{
		registry: registry,
		files:    fetcher.OS(),
		logger:   slog.Default(),
	}

	for _, apply := range opts {
		apply(resolver)
	}

	if resolver.context == nil {
		resolver.context = NewContext("")
	}

	resolver.store = cache.New(resolver.build, cache.WithLogger(resolver.logger))

	return resolver
}

// At returns a Resolver sharing this one's registry, filesystem and cache
// whose directory is fixed to dir (relative to the current directory).
func (r *Resolver) At(dir string) *Resolver {
	return &Resolver{
		registry: r.registry,
		files:    r.files,
		store:    r.store,
		context:  NewContext(r.context.Abs(dir)),
		logger:   r.logger,
	}
}

// Registry returns the loader registry.
func (r *Resolver) Registry() *loader.Registry {
	return r.registry
}

// Store returns the node cache.
func (r *Resolver) Store() *cache.Store {
	return r.store
}

// Context returns the directory context.
func (r *Resolver) Context() *Context {
	return r.context
}

// Directory returns the current directory.
func (r *Resolver) Directory() string {
	return r.context.Get()
}

// SetDirectory changes the current directory; relative paths are taken from the current one.
func (r *Resolver) SetDirectory(path string) {
	r.context.Set(path)
}

// UsingDirectory runs fn with the directory temporarily set to path. Every
// goroutine sharing r sees the change while fn runs; see At for a private root.
func (r *Resolver) UsingDirectory(path string, fn func() error) error {
	return r.context.Using(path, fn)
}

// Get resolves path and returns a copy of its value.
func (r *Resolver) Get(path string) (any, error) {
	abs := r.context.Abs(path)

	prefix, suffix, err := r.split(abs)
	if err != nil {
		return nil, err
	}

	value, err := r.store.Get(prefix)
	if err != nil {
		return nil, errs.AtPath(err, prefix)
	}

	value, err = index(value, prefix, suffix)
	if err != nil {
		return nil, err
	}

	return clone(value), nil
}

// Ensure loads the filesystem node holding path into the cache, rebuilding it when reload is true.
func (r *Resolver) Ensure(path string, reload bool) error {
	prefix, _, err := r.split(r.context.Abs(path))
	if err != nil {
		return err
	}

	err = r.store.Ensure(prefix, reload)
	if err != nil {
		return errs.AtPath(err, prefix)
	}

	return nil
}

// ReloadTree reloads the filesystem node holding path and, for a
// directory, every node below it, children before parents.
func (r *Resolver) ReloadTree(path string) error {
	prefix, _, err := r.split(r.context.Abs(path))
	if err != nil {
		return err
	}

	return r.reloadTree(prefix)
}

func (r *Resolver) reloadTree(path string) error {
	kind, err := r.files.Kind(path)
	if err != nil {
		return err //nolint:wrapcheck // fetcher errors carry the path
	}

	if kind == fetcher.KindDir {
		names, err := r.files.ReadDir(path)
		if err != nil {
			return err //nolint:wrapcheck // fetcher errors carry the path
		}

		for _, name := range names {
			err = r.reloadTree(filepath.Join(path, name))
			if err != nil {
				return err
			}
		}
	}

	err = r.store.Ensure(path, true)
	if err != nil {
		return errs.AtPath(err, path)
	}

	return nil
}

// Invalidate drops the cached node holding path without reloading it.
func (r *Resolver) Invalidate(path string) error {
	prefix, _, err := r.split(r.context.Abs(path))
	if err != nil {
		return err
	}

	r.store.Invalidate(prefix)

	return nil
}

// split returns the longest existing filesystem prefix of abs and the remaining segments.
func (r *Resolver) split(abs string) (string, []string, error) {
	current := abs

	var suffix []string

	for {
		kind, err := r.files.Kind(current)
		if err != nil {
			return "", nil, fmt.Errorf("resolving %s: %w", abs, err)
		}

		if kind != fetcher.KindMissing {
			if kind == fetcher.KindDir && len(suffix) > 0 {
				// every child of a directory exists on disk, so the scan would have stopped below it
				return "", nil, errs.PathNotFound(current, suffix[0])
			}

			return current, suffix, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil, errs.PathNotFound(abs, abs)
		}

		suffix = append([]string{filepath.Base(current)}, suffix...)
		current = parent
	}
}

// build computes the cache value of a filesystem node.
func (r *Resolver) build(path string) (any, error) {
	kind, err := r.files.Kind(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // fetcher errors carry the path
	}

	switch kind {
	case fetcher.KindDir:
		return r.buildDirectory(path)
	case fetcher.KindFile:
		raw, err := r.files.ReadFile(path)
		if err != nil {
			return nil, err //nolint:wrapcheck // fetcher errors carry the path
		}

		value, err := r.registry.Load(raw)
		if err != nil {
			return nil, errs.AtPath(err, path)
		}

		return value, nil
	default:
		return nil, errs.PathNotFound(filepath.Dir(path), filepath.Base(path))
	}
}

// buildDirectory maps each child name to the child's cached value.
func (r *Resolver) buildDirectory(path string) (any, error) {
	names, err := r.files.ReadDir(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // fetcher errors carry the path
	}

	children := make(map[string]any, len(names))

	for _, name := range names {
		child := filepath.Join(path, name)

		value, err := r.store.Get(child)
		if err != nil {
			return nil, errs.AtPath(err, child)
		}

		children[name] = value
	}

	r.logger.Debug("directory aggregated", slog.String("path", path), slog.Int("children", len(children)))

	return children, nil
}
