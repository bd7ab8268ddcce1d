// Package builtin installs the bundled loaders into a registry.
package builtin

import (
	"fmt"
	"slices"

	"github.com/0xalexb/conftree/format/base64"
	"github.com/0xalexb/conftree/format/exec"
	"github.com/0xalexb/conftree/format/hcl"
	"github.com/0xalexb/conftree/format/ini"
	"github.com/0xalexb/conftree/format/json"
	"github.com/0xalexb/conftree/format/scalar"
	"github.com/0xalexb/conftree/format/toml"
	"github.com/0xalexb/conftree/format/yaml"
	"github.com/0xalexb/conftree/loader"
)

// AutoOrder is the default autodetect order: structured formats first,
// text last so any UTF-8 file loads as something.
func AutoOrder() []string {
	return []string{"number", "bool", "none", "yaml", "json", "ini", "exec", "text"}
}

// Descriptors returns every bundled loader except hcl, which is registered
// through hcl.Register so builds without it keep a placeholder.
func Descriptors() []loader.Descriptor {
	descriptors := slices.Clone(scalar.Descriptors())
	descriptors = append(descriptors, json.Descriptors()...)

	return append(descriptors,
		base64.Descriptor(),
		yaml.Descriptor(),
		toml.Descriptor(),
		ini.Descriptor(),
		exec.Descriptor(),
	)
}

// Register installs the bundled loaders, trusts the dangerous capability of
// the loaders named in trusted and sets the default autodetect order.
func Register(registry *loader.Registry, trusted ...string) error {
	for _, descriptor := range Descriptors() {
		err := registry.Register(descriptor)
		if err != nil {
			return fmt.Errorf("registering %s: %w", descriptor.Name, err)
		}
	}

	err := hcl.Register(registry)
	if err != nil {
		return fmt.Errorf("registering hcl: %w", err)
	}

	for _, name := range trusted {
		err = registry.SetDangerous(name, true)
		if err != nil {
			return fmt.Errorf("trusting %s: %w", name, err)
		}
	}

	registry.SetAutoOrder(AutoOrder()...)

	return nil
}

// NewRegistry returns a registry with the bundled loaders installed.
func NewRegistry(trusted []string, opts ...loader.Option) (*loader.Registry, error) {
	registry := loader.New(opts...)

	err := Register(registry, trusted...)
	if err != nil {
		return nil, err
	}

	return registry, nil
}
