// Package uiloop provides the single UI thread the checkout cascade runs on.
//
// Event handlers and document mutations execute one at a time on the loop
// goroutine. Network work runs on its own goroutine (Async) and posts its
// result back, so responses can interleave with newer events but never with
// each other.
package uiloop

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrStopped is returned when posting to a loop that has finished running.
var ErrStopped = errors.New("ui loop stopped")

// Loop is a serial task queue with timers.
type Loop struct {
	clock clockwork.Clock
	lg    *zap.Logger

	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}

	// pending counts Async/Go work that has not yet posted its result.
	pending int
	settled *sync.Cond
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the clock used by After. Defaults to the real clock.
func WithClock(c clockwork.Clock) Option { return func(l *Loop) { l.clock = c } }

// WithLogger sets the logger used for recovered panics.
func WithLogger(lg *zap.Logger) Option { return func(l *Loop) { l.lg = lg } }

// New creates a Loop. Call Run to start processing.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock: clockwork.NewRealClock(),
		lg:    zap.NewNop(),
		wake:  make(chan struct{}, 1),
	}
	l.settled = sync.NewCond(&l.mu)
	for _, o := range opts {
		o(l)
	}
	return l
}

// Clock returns the loop clock.
func (l *Loop) Clock() clockwork.Clock { return l.clock }

// Run processes tasks until ctx is cancelled. Tasks still queued at that point
// are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, task := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.exec(task)
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if rec := recover(); rec != nil {
			l.lg.Error("UI task panicked",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
		}
	}()
	task()
}

// Post enqueues fn for execution on the loop.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from the loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// After runs fn on the loop once d has elapsed on the loop clock. The returned
// timer can be stopped before it fires.
func (l *Loop) After(d time.Duration, fn func()) clockwork.Timer {
	return l.clock.AfterFunc(d, func() {
		if err := l.Post(fn); err != nil {
			l.lg.Debug("Timer fired after loop stopped", zap.Duration("delay", d))
		}
	})
}

// Async runs work on its own goroutine and delivers the outcome to then on the
// loop. The work is tracked until then has been queued, see Wait.
func Async[T any](l *Loop, ctx context.Context, work func(context.Context) (T, error), then func(T, error)) {
	l.track()
	go func() {
		defer l.untrack()
		v, err := work(ctx)
		if postErr := l.Post(func() { then(v, err) }); postErr != nil {
			l.lg.Debug("Dropping async result", zap.Error(postErr))
		}
	}()
}

// Go runs fn on its own goroutine, tracked by Wait.
func (l *Loop) Go(fn func()) {
	l.track()
	go func() {
		defer l.untrack()
		fn()
	}()
}

func (l *Loop) track() {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
}

func (l *Loop) untrack() {
	l.mu.Lock()
	l.pending--
	if l.pending == 0 {
		l.settled.Broadcast()
	}
	l.mu.Unlock()
}

// Wait blocks until every Async and Go call has finished and posted its
// result.
func (l *Loop) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.pending > 0 {
		l.settled.Wait()
	}
}

// Idle blocks until no tracked work is pending and every task queued so far
// has run. Timers that have not fired yet are not waited for.
func (l *Loop) Idle(ctx context.Context) error {
	for {
		l.Wait()
		if err := l.Do(ctx, func() {}); err != nil {
			return err
		}
		l.mu.Lock()
		done := l.pending == 0
		l.mu.Unlock()
		if done {
			return nil
		}
	}
}
