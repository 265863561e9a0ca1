package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Limiter counts attempts per key inside a sliding window. Keys with no
// recent attempts expire from the cache on their own.
type Limiter struct {
	attempts    *gocache.Cache
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	mu          sync.Mutex
}

func NewLimiter(maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{
		attempts:    gocache.New(window, 5*time.Minute),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	var validAttempts []time.Time
	if v, ok := l.attempts.Get(key); ok {
		for _, timestamp := range v.([]time.Time) {
			if timestamp.After(cutoff) {
				validAttempts = append(validAttempts, timestamp)
			}
		}
	}

	if len(validAttempts) >= l.maxAttempts {
		l.attempts.Set(key, validAttempts, gocache.DefaultExpiration)
		return false
	}

	validAttempts = append(validAttempts, now)
	l.attempts.Set(key, validAttempts, gocache.DefaultExpiration)
	return true
}

func (l *Limiter) Reset(key string) {
	l.attempts.Delete(key)
}
