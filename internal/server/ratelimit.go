package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's limiter survives without requests.
const clientIdleTTL = 10 * time.Minute

// clientLimiter throttles requests per remote address with a token bucket each.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// newClientLimiter returns a limiter allowing rps requests per second with
// the given burst per client. A non-positive rps disables throttling.
func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the client at ip may proceed.
func (cl *clientLimiter) Allow(ip string) bool {
	if cl == nil || cl.rate <= 0 {
		return true
	}
	cl.mu.Lock()
	now := cl.now()
	e, ok := cl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(cl.rate, cl.burst)}
		cl.limiters[ip] = e
	}
	e.lastAccess = now
	cl.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// cleanup drops limiters idle for longer than clientIdleTTL.
func (cl *clientLimiter) cleanup() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cutoff := cl.now().Add(-clientIdleTTL)
	removed := 0
	for ip, e := range cl.limiters {
		if e.lastAccess.Before(cutoff) {
			delete(cl.limiters, ip)
			removed++
		}
	}
	return removed
}

// run prunes idle limiters until stop is closed.
func (cl *clientLimiter) run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			cl.cleanup()
		}
	}
}

// wrap rejects requests over the client's budget with a 429 problem.
func (cl *clientLimiter) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			RateLimited(w, "search rate limit exceeded", r.URL.Path)
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
