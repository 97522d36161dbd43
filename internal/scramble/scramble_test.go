package scramble

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/devpradp/portfolio/internal/eventloop"
)

func newEffect(text string) (*Effect, *eventloop.Manual, *[]string) {
	clock := eventloop.NewManual(time.Unix(0, 0))
	e := New(clock, text,
		WithInterval(10*time.Millisecond),
		WithCycles(1),
		WithCharset("#"),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	var frames []string
	e.OnFrame(func(s string) { frames = append(frames, s) })
	return e, clock, &frames
}

func TestScrambleSettlesLeftToRight(t *testing.T) {
	e, clock, frames := newEffect("AB C")

	if e.State() != Idle || e.Text() != "AB C" {
		t.Fatalf("expected idle with target text, got %v %q", e.State(), e.Text())
	}
	e.Start()
	if e.State() != Scrambling || e.Text() != "## #" {
		t.Fatalf("expected fully scrambled buffer keeping spaces, got %q", e.Text())
	}

	clock.Advance(10 * time.Millisecond)
	if e.Text() != "A# #" {
		t.Fatalf("expected first position revealed, got %q", e.Text())
	}
	clock.Advance(30 * time.Millisecond)
	if e.State() != Settled || e.Text() != "AB C" {
		t.Fatalf("expected settled target text, got %v %q", e.State(), e.Text())
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no timer after settling, got %d", clock.Pending())
	}

	want := []string{"## #", "A# #", "AB #", "AB #", "AB C"}
	if strings.Join(*frames, "|") != strings.Join(want, "|") {
		t.Fatalf("expected frames %v, got %v", want, *frames)
	}
}

func TestScrambleBufferLengthIsFixed(t *testing.T) {
	clock := eventloop.NewManual(time.Unix(0, 0))
	e := New(clock, "DEV PRADEEP")
	e.OnFrame(func(s string) {
		if n := len([]rune(s)); n != len([]rune("DEV PRADEEP")) {
			t.Fatalf("frame %q has length %d", s, n)
		}
	})
	e.Start()
	clock.Advance(5 * time.Second)
	if e.State() != Settled {
		t.Fatalf("expected settled, got %v", e.State())
	}
}

func TestRestartCancelsRunningEffect(t *testing.T) {
	e, clock, _ := newEffect("ABCD")
	e.Start()
	clock.Advance(20 * time.Millisecond)

	e.Start()
	if e.Text() != "####" || clock.Pending() != 1 {
		t.Fatalf("expected restart from scratch with one timer, got %q pending=%d", e.Text(), clock.Pending())
	}
	clock.Advance(40 * time.Millisecond)
	if e.State() != Settled {
		t.Fatalf("expected settled 40ms after restart, got %v", e.State())
	}
}

func TestCancelShowsTarget(t *testing.T) {
	e, clock, _ := newEffect("ABCD")
	e.Start()
	clock.Advance(10 * time.Millisecond)

	e.Cancel()
	if e.State() != Idle || e.Text() != "ABCD" || clock.Pending() != 0 {
		t.Fatalf("expected idle target with no timer, got %v %q pending=%d", e.State(), e.Text(), clock.Pending())
	}
}

func TestCloseStopsFrames(t *testing.T) {
	e, clock, frames := newEffect("ABCD")
	e.Start()
	n := len(*frames)

	e.Close()
	clock.Advance(time.Second)
	e.Start()
	if len(*frames) != n {
		t.Fatalf("expected no frames after Close, got %d more", len(*frames)-n)
	}
}

func TestEmptyTextSettlesImmediately(t *testing.T) {
	e, clock, _ := newEffect("")
	e.Start()
	if e.State() != Settled || clock.Pending() != 0 {
		t.Fatalf("expected immediate settle, got %v pending=%d", e.State(), clock.Pending())
	}
}
