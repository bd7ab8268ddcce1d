package conftree

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the conftree version, set via ldflags.
	Version = "dev"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)
