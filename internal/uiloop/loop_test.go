package uiloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T, opts ...Option) *Loop {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	l := New(opts...)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var got []int
	for i := range 5 {
		require.NoError(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_AsyncDeliversOnLoop(t *testing.T) {
	l := startLoop(t)

	var (
		onLoop atomic.Bool
		result string
		gotErr error
	)
	require.NoError(t, l.Do(context.Background(), func() {
		Async(l, context.Background(), func(context.Context) (string, error) {
			return "regions", errors.New("boom")
		}, func(v string, err error) {
			onLoop.Store(true)
			result, gotErr = v, err
		})
	}))

	require.NoError(t, l.Idle(context.Background()))
	assert.True(t, onLoop.Load())
	assert.Equal(t, "regions", result)
	assert.EqualError(t, gotErr, "boom")
}

func TestLoop_AfterUsesClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := startLoop(t, WithClock(clock))

	var fired atomic.Bool
	l.After(500*time.Millisecond, func() { fired.Store(true) })

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(499 * time.Millisecond)
	require.NoError(t, l.Idle(context.Background()))
	assert.False(t, fired.Load())

	clock.Advance(time.Millisecond)
	require.Eventually(t, fired.Load, time.Second, time.Millisecond)
}

func TestLoop_PanicDoesNotStopLoop(t *testing.T) {
	l := startLoop(t)

	require.NoError(t, l.Post(func() { panic("bad handler") }))

	var ran bool
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_PostAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New()
	done := make(chan error)
	go func() { done <- l.Run(ctx) }()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.ErrorIs(t, l.Post(func() {}), ErrStopped)
}
