//go:build conftree_nohcl

package hcl

import (
	"github.com/0xalexb/conftree/loader"
)

// Register reserves the hcl name as a placeholder for the excluded loader.
func Register(registry *loader.Registry) error {
	return registry.RegisterMissing("hcl", []string{"tf"}, "built with the conftree_nohcl tag") //nolint:wrapcheck
}
