package server

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/54b3r/vincula-go/internal/logging"
)

// Per-IP chat limits used when Config leaves them zero.
const (
	defaultRateLimit = 10
	defaultRateBurst = 20
)

// Bucket housekeeping.
const (
	defaultIdleTTL    = 5 * time.Minute
	defaultSweepEvery = time.Minute
)

// limiterConfig parameterises a rateLimiter.
type limiterConfig struct {
	// RPS is the sustained chat rate per client IP.
	RPS float64
	// Burst is the bucket capacity per client IP.
	Burst int
	// IdleTTL is how long an unused bucket is kept (default 5m).
	IdleTTL time.Duration
	// SweepEvery is the eviction period (default 1m).
	SweepEvery time.Duration
	// OnReject is called for every rejected request, before the 429 is written.
	OnReject func(r *http.Request)
}

// visitor is one client's bucket.
type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// rateLimiter throttles chat requests per client IP with token buckets.
// Buckets idle for longer than IdleTTL are evicted in the background.
type rateLimiter struct {
	cfg limiterConfig

	mu       sync.Mutex
	visitors map[string]*visitor
}

// newRateLimiter builds a rateLimiter and starts its sweeper. The returned
// function stops the sweeper; it must be called exactly once.
func newRateLimiter(cfg limiterConfig) (*rateLimiter, func()) {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = defaultSweepEvery
	}
	rl := &rateLimiter{cfg: cfg, visitors: make(map[string]*visitor)}

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(cfg.SweepEvery)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-t.C:
				rl.sweep(now)
			}
		}
	}()
	return rl, func() { close(done) }
}

// allow takes one token from ip's bucket. When the bucket is empty it
// returns false and the wait until the next token.
func (rl *rateLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	if v.bucket.AllowN(now, 1) {
		return true, 0
	}
	missing := 1 - v.bucket.TokensAt(now)
	if rl.cfg.RPS <= 0 {
		return false, time.Duration(math.MaxInt64)
	}
	return false, time.Duration(missing / rl.cfg.RPS * float64(time.Second))
}

// sweep drops buckets not used since now-IdleTTL.
func (rl *rateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-rl.cfg.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// tracked returns the number of live buckets.
func (rl *rateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// middleware rejects over-limit requests with 429, a Retry-After header in
// whole seconds (at least 1) and a rate_limited error body.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.allow(ip, time.Now())
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		logging.FromContext(r.Context()).Warn("chat rate limit exceeded",
			slog.String("ip", ip),
			slog.Duration("retry_after", wait),
		)
		if rl.cfg.OnReject != nil {
			rl.cfg.OnReject(r)
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
		writeError(w, http.StatusTooManyRequests, errRateLimited)
	})
}

// retryAfterSeconds rounds wait up to whole seconds, clamped to [1, 3600].
func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	return min(max(secs, 1), 3600)
}

// clientIP returns RemoteAddr without its port. Forwarding headers are
// ignored, so behind a proxy every client shares the proxy's bucket.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[:i]
	}
	return addr
}
