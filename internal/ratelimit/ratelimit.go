package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults for generation calls.
const (
	DefaultMaxPerWindow = 8
	DefaultWindow       = 60 * time.Second
	DefaultKeyPrefix    = "generation_rate_limit:"
)

// ErrInvalidLimit is returned when a limiter is configured with a
// non-positive ceiling or window.
var ErrInvalidLimit = errors.New("invalid rate limit")

// Store holds per-key fixed-window counters.
type Store interface {
	// CheckAndIncrement atomically reads the counter for key and, if it is
	// below limit, increments it and reports true. A missing or expired counter
	// starts a new window of the given length. When the counter is already at
	// limit it reports false and leaves the counter unchanged.
	CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// TTL returns how long the live window for key has left, or zero when no
	// window is open.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Limiter applies one ceiling and window to every operation key.
type Limiter struct {
	store        Store
	maxPerWindow int
	window       time.Duration
	prefix       string
}

// NewLimiter creates a Limiter over store.
func NewLimiter(store Store, maxPerWindow int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if maxPerWindow <= 0 {
		return nil, fmt.Errorf("%w: max per window must be positive, got %d", ErrInvalidLimit, maxPerWindow)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", ErrInvalidLimit, window)
	}
	return &Limiter{
		store:        store,
		maxPerWindow: maxPerWindow,
		window:       window,
		prefix:       DefaultKeyPrefix,
	}, nil
}

// Allow reports whether one more call for operation may proceed, counting it
// if so. It never blocks waiting for capacity.
func (l *Limiter) Allow(ctx context.Context, operation string) (bool, error) {
	allowed, err := l.store.CheckAndIncrement(ctx, l.prefix+operation, l.maxPerWindow, l.window)
	if err != nil {
		return false, fmt.Errorf("rate limit check for %s: %w", operation, err)
	}
	return allowed, nil
}

// RetryAfter returns how long until operation's current window closes. It
// falls back to the full window when the store cannot tell.
func (l *Limiter) RetryAfter(ctx context.Context, operation string) time.Duration {
	ttl, err := l.store.TTL(ctx, l.prefix+operation)
	if err != nil || ttl <= 0 {
		return l.window
	}
	return ttl
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// MaxPerWindow returns the configured ceiling.
func (l *Limiter) MaxPerWindow() int {
	return l.maxPerWindow
}
