package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalRateLimiter keeps one token bucket per client in process memory. Each
// bucket refills maxRequests tokens per window and holds at most maxRequests.
type LocalRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimit
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type clientLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalRateLimiter(maxRequests int, window time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{
		clients: make(map[string]*clientLimit),
		limit:   rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:   maxRequests,
		idleTTL: 2 * window,
		now:     time.Now,
	}
}

func (l *LocalRateLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, exists := l.clients[clientID]
	if !exists {
		client = &clientLimit{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[clientID] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1), nil
}

// Sweep forgets clients idle for longer than two windows.
func (l *LocalRateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, client := range l.clients {
		if now.Sub(client.lastSeen) > l.idleTTL {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every interval until ctx is done.
func (l *LocalRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
