package theme

import (
	"errors"
	"testing"
)

type brokenStore struct{ err error }

func (b brokenStore) Load() (Theme, bool, error) { return "", false, b.err }
func (b brokenStore) Save(Theme) error           { return b.err }

func TestInitUsesSystemDefaultWithoutPreference(t *testing.T) {
	m := NewManager(&MemoryStore{}, func() Theme { return Dark })
	got, err := m.Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if got != Dark || m.Current() != Dark {
		t.Fatalf("expected dark system default, got %q", got)
	}
}

func TestInitPrefersPersistedTheme(t *testing.T) {
	store := &MemoryStore{}
	store.Save(Light)
	m := NewManager(store, func() Theme { return Dark })
	if got, _ := m.Init(); got != Light {
		t.Fatalf("expected persisted light, got %q", got)
	}
}

func TestToggleSavesAndNotifies(t *testing.T) {
	store := &MemoryStore{}
	m := NewManager(store, nil)
	m.Init()

	var seenA, seenB []Theme
	a := m.Subscribe(func(t Theme) { seenA = append(seenA, t) })
	m.Subscribe(func(t Theme) { seenB = append(seenB, t) })

	next, err := m.Toggle()
	if err != nil || next != Dark {
		t.Fatalf("expected dark, got %q err=%v", next, err)
	}
	if saved, ok, _ := store.Load(); !ok || saved != Dark {
		t.Fatalf("expected dark persisted, got %q ok=%v", saved, ok)
	}

	if !m.Unsubscribe(a) {
		t.Fatal("expected Unsubscribe to find subscriber")
	}
	if m.Unsubscribe(a) {
		t.Fatal("expected second Unsubscribe to report false")
	}
	m.Toggle()

	if len(seenA) != 1 || seenA[0] != Dark {
		t.Fatalf("unexpected notifications for a: %v", seenA)
	}
	if len(seenB) != 2 || seenB[1] != Light {
		t.Fatalf("unexpected notifications for b: %v", seenB)
	}
}

func TestSetSameThemeDoesNotNotify(t *testing.T) {
	m := NewManager(&MemoryStore{}, nil)
	m.Init()
	calls := 0
	m.Subscribe(func(Theme) { calls++ })
	m.Set(Light)
	if calls != 0 {
		t.Fatalf("expected no notification, got %d", calls)
	}
}

func TestStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager(brokenStore{err: boom}, func() Theme { return Dark })

	got, err := m.Init()
	if !errors.Is(err, boom) || got != Dark {
		t.Fatalf("expected dark fallback with wrapped error, got %q %v", got, err)
	}
	if _, err := m.Toggle(); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if m.Current() != Light {
		t.Fatalf("expected in-memory state to change despite save error, got %q", m.Current())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"dark", Dark, false},
		{" Light ", Light, false},
		{"DARK", Dark, false},
		{"sepia", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownTheme) {
			t.Errorf("Parse(%q): expected ErrUnknownTheme, got %v", tt.in, err)
		}
	}
}
