// Package config binds resolved configuration values to typed structs.
//
// The package uses an interface-based design with three extension points:
//   - Getter: resolves a path to a loaded value (a *resolver.Resolver)
//   - Validator: validates config after decoding
//   - Defaulter: applies default values before validation
//
// # Paths
//
// The Provider function accepts a path addressing any node of the tree,
// a directory, a file or a value inside a file:
//
//	"services/api.yaml"         -> the whole api.yaml document
//	"services/api.yaml/limits"  -> the limits key inside api.yaml
//	"services"                  -> every file below services, keyed by name
//
// Values are decoded into the target through yaml struct tags.
//
// # Example
//
// A typical usage pattern:
//
//	type APIConfig struct {
//	    Timeout int    `yaml:"timeout"`
//	    BaseURL string `yaml:"base_url"`
//	}
//
//	provider := config.Provider(&APIConfig{}, "services/api.yaml")
//	cfg, err := provider(resolver)
package config
