package lending

import (
	"time"
)

const (
	// DefaultLeaseDurationDays is how long a lease runs when the borrower
	// does not ask for a specific duration.
	DefaultLeaseDurationDays = 7

	// DefaultSweepInterval is how often the expiry scheduler scans ongoing
	// loans when not configured otherwise.
	DefaultSweepInterval = time.Minute
)

// Config is the configuration surface consumed by the lifecycle engine and
// the expiry scheduler. The zero value is usable after Normalize.
type Config struct {
	// LeaseDurationDays applies when Borrow is called with duration 0.
	LeaseDurationDays int

	// SweepInterval is the period between two expiry sweeps.
	SweepInterval time.Duration
}

// DefaultConfig returns the reference deployment configuration:
// 7-day leases, one sweep per minute.
func DefaultConfig() Config {
	return Config{
		LeaseDurationDays: DefaultLeaseDurationDays,
		SweepInterval:     DefaultSweepInterval,
	}
}

// Normalize replaces non-positive fields with their defaults.
func (c Config) Normalize() Config {
	if c.LeaseDurationDays <= 0 {
		c.LeaseDurationDays = DefaultLeaseDurationDays
	}

	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}

	return c
}
