// Package config provides configuration management for the mriplan planner.
package config

// Default configuration values for mriplan.
const (
	// DefaultSafeMemFraction is the portion of total RAM handed to jobs.
	DefaultSafeMemFraction = 0.9

	// DefaultOutput is the default report format.
	DefaultOutput = "pretty"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
)
