package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RateLimitConfig configures the sliding window limiter guarding the
// checkout endpoints.
type RateLimitConfig struct {
	Max    int           `default:"60" usage:"Max mutating requests per client per window"`
	Window time.Duration `default:"1m" usage:"Rate limit window"`

	// Key identifies the client. Defaults to the client IP.
	Key func(*http.Request) string `json:"-" yaml:"-"`
	// Clock defaults to the real clock.
	Clock clockwork.Clock `json:"-" yaml:"-"`
	// SafeMethods also counts GET and HEAD requests when set.
	SafeMethods bool `default:"false" usage:"Rate limit reads as well as writes"`
}

// RateLimited is the error body of a throttled request.
const RateLimited = "Trop de requêtes, veuillez réessayer plus tard."

// window counts requests in the current and previous fixed windows; the
// effective count weights the previous one by its remaining overlap.
type window struct {
	start      time.Time
	prev, curr float64
}

type limiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	clients map[string]*window
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.Key == nil {
		cfg.Key = ClientIP
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &limiter{cfg: cfg, clients: make(map[string]*window)}
}

// take records a request for key at now and reports whether it is allowed.
func (l *limiter) take(key string, now time.Time) (remaining int, reset time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	size := l.cfg.Window
	start := now.Truncate(size)
	w, found := l.clients[key]
	switch {
	case !found:
		w = &window{start: start}
		l.clients[key] = w
	case start.Sub(w.start) >= 2*size:
		*w = window{start: start}
	case start.After(w.start):
		*w = window{start: start, prev: w.curr}
	}

	weight := 1 - float64(now.Sub(w.start))/float64(size)
	used := w.prev*weight + w.curr
	reset = w.start.Add(size)
	if used >= float64(l.cfg.Max) {
		return 0, reset, false
	}
	w.curr++
	return max(0, int(float64(l.cfg.Max)-used-1)), reset, true
}

// evict drops clients idle for two windows.
func (l *limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, w := range l.clients {
		if now.Sub(w.start) >= 2*l.cfg.Window {
			delete(l.clients, k)
		}
	}
}

func (l *limiter) evictLoop(ctx context.Context) {
	t := l.cfg.Clock.NewTicker(2 * l.cfg.Window)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.Chan():
			l.evict(now)
		}
	}
}

// RateLimit throttles clients past Max requests per sliding Window with a
// 429 and Retry-After. Idle clients are evicted until ctx is done. Reads pass
// through untouched unless SafeMethods is set.
func RateLimit(ctx context.Context, cfg RateLimitConfig) Middleware {
	l := newLimiter(cfg)
	go l.evictLoop(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.cfg.SafeMethods && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}
			now := l.cfg.Clock.Now()
			remaining, reset, ok := l.take(l.cfg.Key(r), now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(reset.Sub(now).Seconds()))))
				writeError(w, http.StatusTooManyRequests, RateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
