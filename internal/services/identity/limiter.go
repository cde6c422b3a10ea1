package identity

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SignerLimiter applies a token bucket per signer fingerprint and evicts
// idle entries as it goes.
type SignerLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu     sync.Mutex
	bySign map[string]*limiterEntry
	hits   uint64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSignerLimiter returns nil, meaning unlimited, unless both perSecond and
// burst are positive.
func NewSignerLimiter(perSecond float64, burst int) *SignerLimiter {
	if perSecond <= 0 || burst <= 0 {
		return nil
	}
	return &SignerLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		bySign:  make(map[string]*limiterEntry),
	}
}

// Ready reports whether signer has a token at now without taking it.
func (l *SignerLimiter) Ready(signer string, now time.Time) bool {
	if l == nil || signer == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.bySign[signer]
	if !ok {
		return true
	}
	return e.limiter.TokensAt(now) >= 1
}

// Allow takes one token for signer at now and reports whether one was there.
func (l *SignerLimiter) Allow(signer string, now time.Time) bool {
	if l == nil || signer == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.bySign[signer]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.bySign[signer] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%256 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.bySign {
			if v.lastSeen.Before(cutoff) {
				delete(l.bySign, k)
			}
		}
	}
	return allowed
}
