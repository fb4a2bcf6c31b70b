package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func passing(context.Context) error { return nil }

func failing(msg string) CheckFunc {
	return func(context.Context) error { return errors.New(msg) }
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func runN(s *state, n int) {
	for range n {
		s.run(context.Background())
	}
}

func TestLiveEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		runs   int
		status int
		body   string
	}{
		{name: "StartsHealthy", runs: 0, status: http.StatusOK, body: `{"status":"ok"}`},
		{name: "BelowThreshold", runs: 2, status: http.StatusOK, body: `{"status":"ok"}`},
		{
			name:   "PastThreshold",
			runs:   3,
			status: http.StatusServiceUnavailable,
			body:   `{"status":"unhealthy","checks":{"db":"connection refused"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			h.AddLivenessCheck(Check{Name: "db", Func: failing("connection refused")})
			runN(h.liveness[0], tt.runs)

			w := get(h.LiveEndpoint, "/livez")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestReadyEndpoint(t *testing.T) {
	h := New()
	h.AddReadinessCheck(Check{Name: "postgres", Func: passing})
	h.AddReadinessCheck(Check{Name: "zones", Func: failing("no zones"), FailureThreshold: 1})

	w := get(h.ReadyEndpoint, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","checks":{"_readiness":"service is not ready"}}`, w.Body.String())

	h.SetReady(true)
	assert.Equal(t, http.StatusOK, get(h.ReadyEndpoint, "/readyz").Code)
	assert.True(t, h.IsReady())

	runN(h.readiness[1], 1)
	w = get(h.ReadyEndpoint, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","checks":{"zones":"no zones"}}`, w.Body.String())
	assert.False(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady())
}

func TestCheckThresholds(t *testing.T) {
	down := true
	h := New()
	h.AddLivenessCheck(Check{Name: "flaky", SuccessThreshold: 2, Func: func(context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	}})
	s := h.liveness[0]
	assert.Nil(t, s.err())

	runN(s, 3)
	assert.False(t, s.healthy.Load())
	assert.EqualError(t, s.err(), "down")

	down = false
	runN(s, 1)
	assert.False(t, s.healthy.Load(), "one success is below the threshold")
	runN(s, 1)
	assert.True(t, s.healthy.Load())
	assert.NoError(t, s.err())
}

func TestStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	core, logs := observer.New(zapcore.InfoLevel)
	h := New(WithClock(clock), WithLogger(zap.New(core)))

	var calls atomic.Int32
	h.AddReadinessCheck(Check{Name: "postgres", FailureThreshold: 1, Func: func(context.Context) error {
		calls.Add(1)
		return errors.New("refused")
	}})

	h.Start(context.Background(), 10*time.Second)
	defer h.Stop()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))

	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	assert.Equal(t, 1, logs.FilterMessage("Check failing").Len(), "only the transition is logged")

	h.Stop()
	h.Stop()
}

func TestPingCheck(t *testing.T) {
	assert.NoError(t, PingCheck(pinger{})(context.Background()))

	err := PingCheck(pinger{err: errors.New("refused")})(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping")
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}

func TestGCMaxPauseCheck(t *testing.T) {
	assert.NoError(t, GCMaxPauseCheck(time.Hour)(context.Background()))
}
