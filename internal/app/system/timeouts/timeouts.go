// Package timeouts holds the deadlines applied to handler and worker I/O.
//
// Values start at their defaults and may be overridden once at startup with
// Configure (bootstrap feeds them from the timeout_* config keys).
//
//   - Ping: health checks
//   - Short: single-document reads and writes, suggestions
//   - Medium: searches, listings, saved-search lists
//   - Sweep: the scheduled expiry sweep
package timeouts

import (
	"context"
	"sync"
	"time"
)

// Defaults.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultSweep  = 60 * time.Second
)

// Config holds timeout values. Zero values are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Sweep  time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Sweep: DefaultSweep}
}

// Ping is the timeout for connectivity checks.
func Ping() time.Duration { return Current().Ping }

// Short is the timeout for single-document operations.
func Short() time.Duration { return Current().Short }

// Medium is the timeout for queries returning pages of results.
func Medium() time.Duration { return Current().Medium }

// Sweep is the timeout for one run of the expiry sweep.
func Sweep() time.Duration { return Current().Sweep }

// Configure overrides the non-zero values in cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		cur.Ping = cfg.Ping
	}
	if cfg.Short > 0 {
		cur.Short = cfg.Short
	}
	if cfg.Medium > 0 {
		cur.Medium = cfg.Medium
	}
	if cfg.Sweep > 0 {
		cur.Sweep = cfg.Sweep
	}
}

// Reset restores the defaults. Tests use it after Configure.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// WithTimeout derives a context bounded by d from parent.
func WithTimeout(parent context.Context, d func() time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, d())
}
