// Package eventloop runs UI callbacks one at a time.
//
// Every engine in this module (visibility observer, slideshow, scramble text,
// widgets) assumes a single-threaded cooperative model: event handlers and
// timer callbacks never overlap. Loop provides that model on top of real
// time, Manual provides it on top of a virtual clock.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Run when the loop was already run to completion.
var ErrClosed = errors.New("eventloop: loop closed")

// Timer is a pending callback armed through a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means the callback already ran or the timer
	// was already stopped.
	Stop() bool
}

// Scheduler arms timers whose callbacks run on the owner's loop.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Loop is a single-goroutine dispatcher backed by the wall clock.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool
}

// New creates a loop whose queue holds up to buffer pending callbacks
// before Post blocks.
func New(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// Post queues fn to run on the loop goroutine. It reports false when the
// loop has already stopped and fn will never run.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc arms fn to run on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.fire() {
				fn()
			}
		})
	})
	return t
}

// Run dispatches queued callbacks until ctx is cancelled. A loop can only
// be run once.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running || l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.closed = true
		l.running = false
		l.mu.Unlock()
		close(l.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

type loopTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}

// fire runs on the loop goroutine. A callback that was already queued when
// Stop was called must not run.
func (t *loopTimer) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.fired = true
	return true
}
