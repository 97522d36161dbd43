// Package inview turns viewport intersection reports into a debounced
// "is this element visible enough" signal that drives entrance animations.
package inview

import (
	"log/slog"
	"time"

	"github.com/devpradp/portfolio/internal/eventloop"
)

const (
	// DefaultThreshold requires the element to be fully visible.
	DefaultThreshold = 1.0

	// DefaultWarmup is how long reports are ignored after subscribing, so
	// elements that intersect while the page is still settling do not
	// trigger their animation on load.
	DefaultWarmup = 150 * time.Millisecond
)

// IntersectionSource is the platform's viewport-intersection facility.
// Observe starts reporting the visible ratio of target whenever it crosses
// threshold and returns a function that detaches the observation.
type IntersectionSource interface {
	Observe(target any, threshold float64, report func(ratio float64)) (disconnect func())
}

type options struct {
	threshold float64
	warmup    time.Duration
	logger    *slog.Logger
}

// Option configures a subscription.
type Option func(*options)

// WithThreshold sets the visible fraction required, clamped to [0,1].
func WithThreshold(t float64) Option {
	return func(o *options) {
		switch {
		case t < 0:
			t = 0
		case t > 1:
			t = 1
		}
		o.threshold = t
	}
}

// WithWarmup overrides DefaultWarmup.
func WithWarmup(d time.Duration) Option {
	return func(o *options) { o.warmup = d }
}

// WithLogger sets the logger used for subscription lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Subscription is the live visibility signal for one element.
type Subscription struct {
	threshold    float64
	initializing bool
	visible      bool

	lastRatio float64
	reported  bool

	inert      bool
	closed     bool
	warmup     eventloop.Timer
	disconnect func()

	listeners map[int]func(bool)
	nextID    int
	logger    *slog.Logger
}

// Observe subscribes to the visibility of target. A nil target (element not
// mounted yet) or nil source yields an inert subscription whose signal stays
// false; call Observe again once the element exists.
func Observe(sched eventloop.Scheduler, src IntersectionSource, target any, opts ...Option) *Subscription {
	o := options{
		threshold: DefaultThreshold,
		warmup:    DefaultWarmup,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Subscription{
		threshold:    o.threshold,
		initializing: true,
		listeners:    make(map[int]func(bool)),
		logger:       o.logger,
	}
	if target == nil || src == nil {
		s.inert = true
		s.logger.Debug("inview: no target, subscription is inert")
		return s
	}

	s.warmup = sched.AfterFunc(o.warmup, s.finishWarmup)
	s.disconnect = src.Observe(target, s.threshold, s.report)
	return s
}

// Visible reports whether the element currently meets the threshold.
func (s *Subscription) Visible() bool { return s.visible }

// Initializing reports whether the warm-up delay is still running.
func (s *Subscription) Initializing() bool { return s.initializing }

// Threshold returns the effective threshold.
func (s *Subscription) Threshold() float64 { return s.threshold }

// Inert reports whether the subscription never attached to an element.
func (s *Subscription) Inert() bool { return s.inert }

// OnChange registers fn to be called with every change of the signal.
func (s *Subscription) OnChange(fn func(visible bool)) (cancel func()) {
	if s.closed || s.inert {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Close cancels the warm-up timer and detaches the observation. No signal
// update happens after Close, even when it runs before warm-up completes.
func (s *Subscription) Close() {
	if s.closed || s.inert {
		return
	}
	s.closed = true
	if s.warmup != nil {
		s.warmup.Stop()
		s.warmup = nil
	}
	if s.disconnect != nil {
		s.disconnect()
		s.disconnect = nil
	}
	s.listeners = nil
}

func (s *Subscription) report(ratio float64) {
	if s.closed {
		return
	}
	s.lastRatio = ratio
	s.reported = true
	if s.initializing {
		return
	}
	s.set(ratio >= s.threshold)
}

// finishWarmup applies the last ratio seen during warm-up, so an element
// that was already on screen at mount becomes visible once warm-up ends.
func (s *Subscription) finishWarmup() {
	if s.closed {
		return
	}
	s.warmup = nil
	s.initializing = false
	if s.reported {
		s.set(s.lastRatio >= s.threshold)
	}
}

func (s *Subscription) set(visible bool) {
	if s.visible == visible {
		return
	}
	s.visible = visible
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fn(visible)
		}
		if s.closed {
			return
		}
	}
}
