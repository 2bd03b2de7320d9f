package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// VisitorLimiter hands out one token bucket per client address and evicts
// buckets that have been idle for a while.
type VisitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func NewVisitorLimiter(rps float64, burst int) *VisitorLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &VisitorLimiter{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (v *VisitorLimiter) Get(addr string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, exists := v.visitors[addr]
	if !exists {
		limiter := rate.NewLimiter(v.rps, v.burst)
		v.visitors[addr] = &clientLimiter{limiter, time.Now()}
		return limiter
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// StartCleanupLoop evicts idle visitors every minute until stop is closed.
func (v *VisitorLimiter) StartCleanupLoop(stop <-chan struct{}) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			v.mu.Lock()
			for addr, c := range v.visitors {
				if time.Since(c.lastSeen) > 5*time.Minute {
					delete(v.visitors, addr)
				}
			}
			v.mu.Unlock()
		case <-stop:
			return
		}
	}
}
