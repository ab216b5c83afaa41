// rate_limiter.go - Rate limiting to stay inside annotation provider quotas

package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a new rate limiter
// maxTokens: maximum number of concurrent requests
// refillRate: time between token refills
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
	}
}

// Wait blocks until a token is available
func (rl *RateLimiter) Wait() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	for rl.tokens <= 0 {
		rl.mu.Unlock()
		time.Sleep(100 * time.Millisecond)
		rl.mu.Lock()
		rl.refill()
	}

	rl.tokens--
}

// refill adds tokens earned since the last refill. Caller must hold mu.
func (rl *RateLimiter) refill() {
	now := time.Now()
	tokensToAdd := int(now.Sub(rl.lastRefillTime) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefillTime = now
	}
}

// Global limiter guarding annotation API calls. Defaults to the Vision API
// free-tier budget; Init overrides it from configuration at startup.
var (
	globalMu          sync.Mutex
	globalRateLimiter = NewRateLimiter(15, 4*time.Second)
)

// Init replaces the global limiter with one sized for the configured
// requests-per-minute budget.
func Init(requestsPerMinute int) {
	if requestsPerMinute <= 0 {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRateLimiter = NewRateLimiter(requestsPerMinute, time.Minute/time.Duration(requestsPerMinute))
}

// Wait blocks until the global limiter grants a token.
func Wait() {
	globalMu.Lock()
	rl := globalRateLimiter
	globalMu.Unlock()
	rl.Wait()
}
