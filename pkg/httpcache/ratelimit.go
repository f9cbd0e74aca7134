package httpcache

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// defaultMinDelay is the minimum spacing between requests to one host.
const defaultMinDelay = 1100 * time.Millisecond

var globalRateLimiter = newDomainRateLimiter(defaultMinDelay)

func newDomainRateLimiter(minDelay time.Duration) *domainRateLimiter {
	return &domainRateLimiter{minDelay: minDelay}
}

// domainRateLimiter spaces requests to the same host. Different hosts
// never wait on each other.
type domainRateLimiter struct {
	lastRequest sync.Map
	mu          sync.Map
	minDelay    time.Duration
}

// Wait blocks until a request to rawURL's host may be sent, or ctx ends.
func (r *domainRateLimiter) Wait(ctx context.Context, rawURL string, logger *slog.Logger) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	domain := u.Host

	muI, _ := r.mu.LoadOrStore(domain, &sync.Mutex{})
	mu, ok := muI.(*sync.Mutex)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	delay := r.minDelay
	if lastI, ok := r.lastRequest.Load(domain); ok {
		if last, ok := lastI.(time.Time); ok {
			if elapsed := time.Since(last); elapsed < delay {
				waitTime := delay - elapsed
				logger.DebugContext(ctx, "rate limit pause", "domain", domain, "wait", waitTime)
				timer := time.NewTimer(waitTime)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
		}
	}

	r.lastRequest.Store(domain, time.Now())
	return nil
}
