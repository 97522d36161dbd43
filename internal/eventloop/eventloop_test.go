package eventloop

import (
	"context"
	"testing"
	"time"
)

func TestManualRunsCallbacksInDeadlineOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var got []string

	m.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(250 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}

	m.Advance(50 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("expected c to fire at 300ms, got %v", got)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManualRunsTimersArmedInsideWindow(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var at []time.Duration
	start := m.Now()

	m.AfterFunc(100*time.Millisecond, func() {
		at = append(at, m.Now().Sub(start))
		m.AfterFunc(100*time.Millisecond, func() {
			at = append(at, m.Now().Sub(start))
		})
	})

	m.Advance(time.Second)
	if len(at) != 2 || at[0] != 100*time.Millisecond || at[1] != 200*time.Millisecond {
		t.Fatalf("expected callbacks at 100ms and 200ms, got %v", at)
	}
	if got := m.Now().Sub(start); got != time.Second {
		t.Fatalf("expected clock at 1s, got %v", got)
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ran := false
	timer := m.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Fatal("expected first Stop to report true")
	}
	if timer.Stop() {
		t.Fatal("expected second Stop to report false")
	}
	m.Advance(2 * time.Second)
	if ran {
		t.Fatal("stopped timer ran")
	}

	fired := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	if fired.Stop() {
		t.Fatal("expected Stop after firing to report false")
	}
}

func TestLoopRunsPostedCallbacksInOrder(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	results := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		if !l.Post(func() { results <- i }) {
			t.Fatal("Post failed on a running loop")
		}
	}
	for want := 0; want < 3; want++ {
		select {
		case got := <-results:
			if got != want {
				t.Fatalf("expected %d, got %d", want, got)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for posted callback")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.Post(func() {}) {
		t.Fatal("expected Post to fail after the loop stopped")
	}
	if err := l.Run(context.Background()); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestLoopTimerStopPreventsCallback(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan string, 2)
	var stopped Timer
	l.Post(func() {
		stopped = l.AfterFunc(20*time.Millisecond, func() { fired <- "stopped" })
		l.AfterFunc(40*time.Millisecond, func() { fired <- "kept" })
		stopped.Stop()
	})

	select {
	case got := <-fired:
		if got != "kept" {
			t.Fatalf("expected only the kept timer to fire, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for timer")
	}
}
