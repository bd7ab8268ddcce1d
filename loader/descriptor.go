package loader

import (
	"errors"
	"fmt"

	"github.com/0xalexb/conftree/header"
)

// ErrEmptyName is returned when a descriptor has no canonical name.
var ErrEmptyName = errors.New("loader name must not be empty")

// ErrNoCapability is returned when a descriptor defines neither Load nor DangerousLoad.
var ErrNoCapability = errors.New("loader defines no load capability")

// LoadFunc parses decoded file text. Options are the header options, encoding excluded.
type LoadFunc func(text string, opts header.Options) (any, error)

// Descriptor describes a loader. At least one of Load and DangerousLoad must be set.
type Descriptor struct {
	Name    string
	Aliases []string
	// Load cannot run side-effecting code.
	Load LoadFunc
	// DangerousLoad may run side-effecting code; it is used only when trusted.
	DangerousLoad LoadFunc
}

// Validate checks the descriptor can be registered.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}

	if d.Load == nil && d.DangerousLoad == nil {
		return fmt.Errorf("%q: %w", d.Name, ErrNoCapability)
	}

	for _, alias := range d.Aliases {
		if alias == "" {
			return fmt.Errorf("%q alias: %w", d.Name, ErrEmptyName)
		}
	}

	return nil
}

// HasSafe reports whether the descriptor has a safe capability.
func (d Descriptor) HasSafe() bool {
	return d.Load != nil
}

// HasDangerous reports whether the descriptor has a dangerous capability.
func (d Descriptor) HasDangerous() bool {
	return d.DangerousLoad != nil
}

// Names returns the canonical name followed by the aliases.
func (d Descriptor) Names() []string {
	return append([]string{d.Name}, d.Aliases...)
}
