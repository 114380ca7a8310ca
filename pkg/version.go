// Package sampler holds build information of the sampler binary.
package sampler

var (
	// Version of sampler, set with ldflags during release builds.
	Version = "v0.1.0"

	// Build timestamp, set with ldflags.
	Build = "n/a"
)
