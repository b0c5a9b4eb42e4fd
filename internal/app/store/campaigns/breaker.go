// internal/app/store/campaigns/breaker.go
package campaignstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker in front of the collection.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // trial requests allowed while half-open
	Interval         time.Duration // closed-state count reset period
	Timeout          time.Duration // open → half-open delay
	FailureThreshold uint32        // consecutive failures that trip the breaker
}

// DefaultBreakerConfig is used by New.
var DefaultBreakerConfig = BreakerConfig{
	Name:             "campaigns",
	MaxRequests:      3,
	Interval:         time.Minute,
	Timeout:          15 * time.Second,
	FailureThreshold: 5,
}

func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[any] {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig.FailureThreshold
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Outcomes that say something about the data, not the server,
		// must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrConditionFailed) ||
				errors.Is(err, ErrInvalidDocument) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, int(to))
		},
	}
	metrics.SetBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[any](settings)
}

// run executes fn behind the breaker. A rejected call (open or half-open
// and saturated) returns ErrUnavailable.
func run[T any](s *Store, fn func() (T, error)) (T, error) {
	out, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
