package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sort"
	"sync"

	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/header"
	"go.uber.org/multierr"
)

// ErrNotDangerous is returned when trust is set on a loader without a dangerous capability.
var ErrNotDangerous = errors.New("loader has no dangerous capability")

// ErrLoaderPanic is wrapped into the loader error when a parser panics.
var ErrLoaderPanic = errors.New("loader panicked")

type entry struct {
	descriptor Descriptor
	// missing is set for placeholders of unavailable optional dependencies.
	missing string
}

// Registry maps loader names and aliases to descriptors and holds the trust
// table and autodetect order. It is safe for concurrent use; registration
// and trust changes take a write lock, dispatch reads a consistent snapshot.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	trust   map[string]bool
	auto    []string
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and autodetect diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAutoOrder sets the initial autodetect order.
func WithAutoOrder(names ...string) Option {
	return func(r *Registry) {
		r.auto = slices.Clone(names)
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	registry := &Registry{
		mu:      sync.RWMutex{},
		entries: make(map[string]*entry),
		trust:   make(map[string]bool),
		auto:    nil,
		logger:  slog.Default(),
	}

	for _, apply := range opts {
		apply(registry)
	}

	return registry
}

type registerConfig struct {
	dangerous bool
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

// Trusted sets the initial trust flag of a dangerous-capable loader. Default false.
func Trusted(enabled bool) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.dangerous = enabled
	}
}

// Register inserts or replaces the descriptor under its name and aliases.
// Names and aliases share one namespace: an existing name is overwritten.
// A dangerous-capable descriptor gets a trust flag, false unless Trusted(true) is given.
func (r *Registry) Register(descriptor Descriptor, opts ...RegisterOption) error {
	err := descriptor.Validate()
	if err != nil {
		return err
	}

	var cfg registerConfig
	for _, apply := range opts {
		apply(&cfg)
	}

	registered := &entry{
		descriptor: cloneDescriptor(descriptor),
		missing:    "",
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range descriptor.Names() {
		r.entries[name] = registered
	}

	if descriptor.HasDangerous() {
		r.trust[descriptor.Name] = cfg.dangerous
	} else {
		delete(r.trust, descriptor.Name)
	}

	r.logger.Info("loader registered",
		slog.String("loader", descriptor.Name),
		slog.Any("aliases", descriptor.Aliases),
		slog.Bool("safe", descriptor.HasSafe()),
		slog.Bool("dangerous", descriptor.HasDangerous()),
	)

	return nil
}

// RegisterMissing reserves name and aliases for a loader whose backing
// library is not available in this build. Resolving it fails with
// errs.KindMissingLoader carrying reason.
func (r *Registry) RegisterMissing(name string, aliases []string, reason string) error {
	if name == "" {
		return ErrEmptyName
	}

	placeholder := &entry{
		descriptor: Descriptor{
			Name:          name,
			Aliases:       slices.Clone(aliases),
			Load:          nil,
			DangerousLoad: nil,
		},
		missing: reason,
	}

	if placeholder.missing == "" {
		placeholder.missing = "backing library not available"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alias := range placeholder.descriptor.Names() {
		r.entries[alias] = placeholder
	}

	delete(r.trust, name)

	r.logger.Info("loader placeholder registered", slog.String("loader", name), slog.String("reason", reason))

	return nil
}

// Resolve looks a loader up by canonical name or alias (case-sensitive).
func (r *Registry) Resolve(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.entries[name]
	if !ok {
		return Descriptor{}, errs.UnknownLoader(name)
	}

	if found.missing != "" {
		return Descriptor{}, errs.MissingLoader(found.descriptor.Name, found.missing)
	}

	return cloneDescriptor(found.descriptor), nil
}

// SetDangerous sets the trust flag of the loader known as name (alias or canonical).
// Loaders with a safe capability only have no flag to set.
func (r *Registry) SetDangerous(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, ok := r.entries[name]
	if !ok {
		return errs.UnknownLoader(name)
	}

	if found.missing == "" && !found.descriptor.HasDangerous() {
		return fmt.Errorf("%q: %w", found.descriptor.Name, ErrNotDangerous)
	}

	r.trust[found.descriptor.Name] = enabled

	r.logger.Info("loader trust changed", slog.String("loader", found.descriptor.Name), slog.Bool("dangerous", enabled))

	return nil
}

// Dangerous reports the trust flag of the loader known as name.
func (r *Registry) Dangerous(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.entries[name]
	if !ok {
		return false
	}

	return r.trust[found.descriptor.Name]
}

// TrustTable returns a copy of the trust flags keyed by canonical name.
func (r *Registry) TrustTable() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := make(map[string]bool, len(r.trust))
	for name, enabled := range r.trust {
		table[name] = enabled
	}

	return table
}

// SetAutoOrder replaces the autodetect order. Names are resolved at attempt time.
func (r *Registry) SetAutoOrder(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.auto = slices.Clone(names)
}

// AutoOrder returns a copy of the autodetect order.
func (r *Registry) AutoOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.auto)
}

// Info summarizes a registered loader.
type Info struct {
	Name      string
	Aliases   []string
	Safe      bool
	Dangerous bool
	Trusted   bool
	// Missing is the placeholder reason; empty for installed loaders.
	Missing string
}

// Loaders lists the registered loaders by canonical name.
func (r *Registry) Loaders() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[*entry]bool, len(r.entries))
	infos := make([]Info, 0, len(r.entries))

	for _, found := range r.entries {
		if seen[found] {
			continue
		}

		seen[found] = true

		infos = append(infos, Info{
			Name:      found.descriptor.Name,
			Aliases:   slices.Clone(found.descriptor.Aliases),
			Safe:      found.descriptor.HasSafe(),
			Dangerous: found.descriptor.HasDangerous(),
			Trusted:   r.trust[found.descriptor.Name],
			Missing:   found.missing,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}

// Dispatch parses text with the loader known as name, choosing the
// dangerous capability only when it exists and is trusted.
func (r *Registry) Dispatch(name, text string, opts header.Options) (any, error) {
	r.mu.RLock()
	found, ok := r.entries[name]
	trusted := ok && r.trust[found.descriptor.Name]
	r.mu.RUnlock()

	if !ok {
		return nil, errs.UnknownLoader(name)
	}

	if found.missing != "" {
		return nil, errs.MissingLoader(found.descriptor.Name, found.missing)
	}

	descriptor := found.descriptor

	var load LoadFunc

	switch {
	case descriptor.HasDangerous() && trusted:
		load = descriptor.DangerousLoad
	case descriptor.HasSafe():
		load = descriptor.Load
	case descriptor.HasDangerous():
		return nil, errs.DisabledLoader(descriptor.Name)
	default:
		return nil, fmt.Errorf("%q: %w", descriptor.Name, ErrNoCapability)
	}

	value, err := r.call(descriptor.Name, load, text, opts)
	if err != nil {
		var classified *errs.Error
		if errors.As(err, &classified) {
			return nil, err
		}

		return nil, errs.LoaderRuntime(descriptor.Name, err)
	}

	return value, nil
}

// Autodetect attempts every loader of the auto order and returns the first success.
// When all attempts fail the error aggregates each attempt's failure.
func (r *Registry) Autodetect(text string, opts header.Options) (any, error) {
	var attempts error

	for _, name := range r.AutoOrder() {
		value, err := r.Dispatch(name, text, opts)
		if err == nil {
			r.logger.Debug("autodetect matched", slog.String("loader", name))

			return value, nil
		}

		r.logger.Debug("autodetect attempt failed", slog.String("loader", name), slog.String("error", err.Error()))

		attempts = multierr.Append(attempts, fmt.Errorf("%s: %w", name, err))
	}

	return nil, errs.AutodetectExhausted(attempts)
}

// Load parses raw file content: a header selects the loader, otherwise the
// content is autodetected.
func (r *Registry) Load(raw []byte) (any, error) {
	head, text, err := header.Parse(raw)
	if err != nil {
		return nil, err
	}

	if head.Present {
		return r.Dispatch(head.Type, text, head.Options)
	}

	return r.Autodetect(text, head.Options)
}

// call runs load and turns a panic into an error so one broken parser cannot
// take down an autodetect pass.
func (r *Registry) call(name string, load LoadFunc, text string, opts header.Options) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("loader panic recovered",
				slog.String("loader", name),
				slog.String("panic", fmt.Sprintf("%v", rec)),
				slog.String("stack", string(debug.Stack())),
			)

			value = nil
			err = fmt.Errorf("%w: %v", ErrLoaderPanic, rec)
		}
	}()

	return load(text, opts)
}

func cloneDescriptor(descriptor Descriptor) Descriptor {
	descriptor.Aliases = slices.Clone(descriptor.Aliases)

	return descriptor
}
