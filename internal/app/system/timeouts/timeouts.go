// Package timeouts holds the deadlines handlers put on storage calls.
//
//   - Ping: health checks
//   - Read: single-campaign lookups
//   - List: discovery queries (filter + count)
//   - Write: creates, edits, transitions, joins and deletes
//
// Values are set once at startup from config and read on every request.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing  = 2 * time.Second
	DefaultRead  = 5 * time.Second
	DefaultList  = 10 * time.Second
	DefaultWrite = 10 * time.Second
)

// Config holds timeout values. Zero fields keep the current value.
type Config struct {
	Ping  time.Duration
	Read  time.Duration
	List  time.Duration
	Write time.Duration
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Read: DefaultRead, List: DefaultList, Write: DefaultWrite}
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

func Ping() time.Duration  { return get(func(c Config) time.Duration { return c.Ping }) }
func Read() time.Duration  { return get(func(c Config) time.Duration { return c.Read }) }
func List() time.Duration  { return get(func(c Config) time.Duration { return c.List }) }
func Write() time.Duration { return get(func(c Config) time.Duration { return c.Write }) }

// Configure overrides the non-zero fields of cfg. Call it during startup,
// before the router is built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		current.Ping = cfg.Ping
	}
	if cfg.Read > 0 {
		current.Read = cfg.Read
	}
	if cfg.List > 0 {
		current.List = cfg.List
	}
	if cfg.Write > 0 {
		current.Write = cfg.Write
	}
}

// Reset restores the defaults. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// Current returns a snapshot of the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "campaign join")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
