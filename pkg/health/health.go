// Package health serves the /livez and /readyz probes of the storefront API.
//
// Every check runs on its own ticker. A check turns unhealthy after
// FailureThreshold consecutive failures and healthy again after
// SuccessThreshold consecutive successes.
package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// CheckFunc returns nil when the checked component is healthy.
type CheckFunc func(ctx context.Context) error

// Check describes a registered probe.
type Check struct {
	Name             string
	Timeout          time.Duration
	Func             CheckFunc
	FailureThreshold int
	SuccessThreshold int
}

// state is a registered check plus its runtime state. run is only called
// from the check's own goroutine, so the counters need no locking.
type state struct {
	Check

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails, oks int
}

func (s *state) err() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// run executes the check once and reports whether its health flipped.
func (s *state) run(ctx context.Context) (flipped bool) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	err := s.Func(ctx)
	s.lastErr.Store(&err)

	was := s.healthy.Load()
	if err != nil {
		s.oks = 0
		s.fails++
		if s.fails >= s.FailureThreshold {
			s.healthy.Store(false)
		}
	} else {
		s.fails = 0
		s.oks++
		if s.oks >= s.SuccessThreshold {
			s.healthy.Store(true)
		}
	}
	return was != s.healthy.Load()
}

// Option configures Health.
type Option func(*Health)

// WithClock sets the clock driving check tickers.
func WithClock(c clockwork.Clock) Option { return func(h *Health) { h.clock = c } }

// WithLogger sets the logger health transitions are reported to.
func WithLogger(lg *zap.Logger) Option { return func(h *Health) { h.lg = lg } }

// Health tracks liveness and readiness of the service.
type Health struct {
	clock clockwork.Clock
	lg    *zap.Logger
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*state
	readiness []*state
	cancel    context.CancelFunc
}

// New returns a Health that is not ready until SetReady(true).
func New(opts ...Option) *Health {
	h := &Health{
		clock: clockwork.NewRealClock(),
		lg:    zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func newState(c Check) *state {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 3
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = time.Second
	}
	s := &state{Check: c}
	s.healthy.Store(true)
	return s
}

// AddLivenessCheck registers a check of whether the process still works.
func (h *Health) AddLivenessCheck(c Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newState(c))
}

// AddReadinessCheck registers a check of whether the service can take
// traffic, such as database connectivity.
func (h *Health) AddReadinessCheck(c Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newState(c))
}

// Start runs every registered check now and then every interval until Stop
// or ctx is done.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	checks := append(append([]*state(nil), h.liveness...), h.readiness...)
	h.mu.Unlock()

	for _, s := range checks {
		go h.loop(ctx, s, interval)
	}
}

func (h *Health) loop(ctx context.Context, s *state, interval time.Duration) {
	t := h.clock.NewTicker(interval)
	defer t.Stop()

	for {
		if s.run(ctx) {
			if s.healthy.Load() {
				h.lg.Info("Check recovered", zap.String("check", s.Name))
			} else {
				h.lg.Warn("Check failing", zap.String("check", s.Name), zap.Error(s.err()))
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
		}
	}
}

// Stop cancels the check goroutines. It is safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady marks the service ready after startup, or unready while draining.
func (h *Health) SetReady(ready bool) { h.ready.Store(ready) }

// IsReady reports whether the service is marked ready and every readiness
// check passes.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.readiness {
		if !s.healthy.Load() {
			return false
		}
	}
	return true
}

// LiveEndpoint serves /livez.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	failures := failures(h.liveness)
	h.mu.RUnlock()
	writeStatus(w, failures)
}

// ReadyEndpoint serves /readyz.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	failures := failures(h.readiness)
	h.mu.RUnlock()
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

func failures(checks []*state) map[string]string {
	out := make(map[string]string)
	for _, s := range checks {
		if s.healthy.Load() {
			continue
		}
		if err := s.err(); err != nil {
			out[s.Name] = err.Error()
		} else {
			out[s.Name] = "check is unhealthy"
		}
	}
	return out
}

// writeStatus writes {"status":"ok"} or 503 with
// {"status":"unhealthy","checks":{name:error}}.
func writeStatus(w http.ResponseWriter, failures map[string]string) {
	var e jx.Encoder
	status := http.StatusOK
	e.Obj(func(e *jx.Encoder) {
		if len(failures) == 0 {
			e.Field("status", func(e *jx.Encoder) { e.Str("ok") })
			return
		}
		status = http.StatusServiceUnavailable
		e.Field("status", func(e *jx.Encoder) { e.Str("unhealthy") })
		names := make([]string, 0, len(failures))
		for n := range failures {
			names = append(names, n)
		}
		sort.Strings(names)
		e.Field("checks", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for _, n := range names {
					e.Field(n, func(e *jx.Encoder) { e.Str(failures[n]) })
				}
			})
		})
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
