// Package ratelimit implements the per-email attempt throttle for the
// recovery endpoint: a fixed window of attempts per caller identity,
// counted in memory.
package ratelimit

import (
	"sync"
	"time"
)

type windowEntry struct {
	count int
	reset time.Time
}

// Limiter is a fixed-window attempt counter keyed by caller identity.
// Windows start at the first attempt for a key and expire after the
// configured duration; expired entries are pruned opportunistically.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	entries map[string]*windowEntry
}

// New creates a Limiter allowing max attempts per key within window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

// Allow records one attempt for key and reports whether it is within the
// window budget. The attempt is counted even when it pushes the key over
// the limit, so a caller cannot probe the threshold for free.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e := l.entries[key]
	if e == nil || !now.Before(e.reset) {
		l.prune(now)
		e = &windowEntry{reset: now.Add(l.window)}
		l.entries[key] = e
	}

	e.count++
	return e.count <= l.max
}

// prune drops expired windows. Caller holds l.mu.
func (l *Limiter) prune(now time.Time) {
	for k, e := range l.entries {
		if !now.Before(e.reset) {
			delete(l.entries, k)
		}
	}
}
