package version

// Build information, overridden at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)
