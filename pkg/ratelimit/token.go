package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a fixed token budget per refill period. It is used to
// stay under the generation API's tokens-per-minute quota.
type TokenLimiter struct {
	sync.Mutex
	capacity     int
	remaining    int
	refillPeriod time.Duration
	lastRefill   time.Time
}

func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		capacity:     tokensPerMinute,
		remaining:    tokensPerMinute,
		refillPeriod: time.Minute,
		lastRefill:   time.Now(),
	}
}

func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.refill()

		l.Lock()
		if l.remaining >= tokens {
			l.remaining -= tokens
			l.Unlock()
			return nil
		}
		l.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			// retry shortly
		}
	}
}

func (l *TokenLimiter) refill() {
	l.Lock()
	defer l.Unlock()

	now := time.Now()
	if now.Sub(l.lastRefill) >= l.refillPeriod {
		l.remaining = l.capacity
		l.lastRefill = now
	}
}

func (l *TokenLimiter) GetRemaining() int {
	l.Lock()
	defer l.Unlock()
	return l.remaining
}
