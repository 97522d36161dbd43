// Package scramble implements the hero "scramble text" effect: random
// glyphs settle left to right into the target text on a repeating timer.
package scramble

import (
	"math/rand/v2"
	"time"

	"github.com/devpradp/portfolio/internal/eventloop"
)

const (
	DefaultCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!<>-_/[]{}=+*^?#"
	DefaultInterval = 30 * time.Millisecond
	// DefaultCycles is how many frames a position scrambles before it locks.
	DefaultCycles = 3
)

// State of an Effect.
type State int

const (
	Idle State = iota
	Scrambling
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scrambling:
		return "scrambling"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

type Option func(*Effect)

func WithInterval(d time.Duration) Option { return func(e *Effect) { e.interval = d } }

func WithCycles(n int) Option {
	return func(e *Effect) {
		if n > 0 {
			e.cycles = n
		}
	}
}

func WithCharset(s string) Option {
	return func(e *Effect) {
		if s != "" {
			e.charset = []rune(s)
		}
	}
}

// WithRand makes the glyph sequence reproducible.
func WithRand(r *rand.Rand) Option { return func(e *Effect) { e.rnd = r } }

// Effect scrambles one fixed-length text.
type Effect struct {
	sched    eventloop.Scheduler
	target   []rune
	buf      []rune
	charset  []rune
	rnd      *rand.Rand
	interval time.Duration
	cycles   int

	state    State
	frame    int
	revealed int
	timer    eventloop.Timer
	closed   bool

	listeners []func(string)
}

// New returns an idle effect that shows text as is.
func New(sched eventloop.Scheduler, text string, opts ...Option) *Effect {
	e := &Effect{
		sched:    sched,
		target:   []rune(text),
		charset:  []rune(DefaultCharset),
		interval: DefaultInterval,
		cycles:   DefaultCycles,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.buf = append([]rune(nil), e.target...)
	return e
}

// OnFrame registers fn to receive every rendered frame.
func (e *Effect) OnFrame(fn func(text string)) {
	if e.closed {
		return
	}
	e.listeners = append(e.listeners, fn)
}

// Start (re)starts the effect from a fully scrambled buffer. A running
// effect is cancelled first.
func (e *Effect) Start() {
	if e.closed {
		return
	}
	e.stop()
	e.state = Scrambling
	e.frame = 0
	e.revealed = 0
	if len(e.target) == 0 {
		e.settle()
		return
	}
	e.render()
	e.arm()
}

// Cancel stops the effect and shows the target text.
func (e *Effect) Cancel() {
	if e.closed {
		return
	}
	e.stop()
	e.state = Idle
	e.buf = append(e.buf[:0], e.target...)
	e.emit()
}

// Close stops the effect for good. No frame is emitted afterwards.
func (e *Effect) Close() {
	e.stop()
	e.closed = true
	e.listeners = nil
}

func (e *Effect) State() State { return e.state }
func (e *Effect) Text() string { return string(e.buf) }

func (e *Effect) arm() {
	e.timer = e.sched.AfterFunc(e.interval, e.tick)
}

func (e *Effect) tick() {
	e.timer = nil
	if e.closed || e.state != Scrambling {
		return
	}
	e.frame++
	if e.frame%e.cycles == 0 {
		e.revealed++
	}
	if e.revealed >= len(e.target) {
		e.settle()
		return
	}
	e.render()
	e.arm()
}

func (e *Effect) settle() {
	e.state = Settled
	e.buf = append(e.buf[:0], e.target...)
	e.emit()
}

func (e *Effect) render() {
	for i, r := range e.target {
		switch {
		case i < e.revealed, r == ' ':
			e.buf[i] = r
		default:
			e.buf[i] = e.charset[e.rnd.IntN(len(e.charset))]
		}
	}
	e.emit()
}

func (e *Effect) stop() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Effect) emit() {
	text := string(e.buf)
	for _, fn := range e.listeners {
		fn(text)
	}
}
