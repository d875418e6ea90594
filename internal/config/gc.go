package config

import "time"

// DefaultGCConfig returns the active-expiration tuning used when a Config
// is built programmatically (tests, embedding) rather than via Load.
func DefaultGCConfig() GCConfig {
	return GCConfig{
		Enabled:         true,
		Interval:        100 * time.Millisecond,
		SamplesPerCheck: 20,
		MatchThreshold:  0.25,
	}
}
