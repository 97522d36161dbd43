// Package theme holds the light/dark preference. A Manager is created
// explicitly, initialised from its Store (or the system default) and
// notifies subscribers on every change.
package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var ErrUnknownTheme = errors.New("theme: unknown theme")

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Opposite returns the theme a toggle switches to.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store persists the preference. Load reports ok=false when nothing was
// saved yet.
type Store interface {
	Load() (t Theme, ok bool, err error)
	Save(t Theme) error
}

// Manager is the process-wide theme state.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	system  func() Theme
	current Theme
	subs    map[uuid.UUID]func(Theme)
	order   []uuid.UUID
}

// NewManager returns a manager that falls back to system() when the store
// holds no preference. A nil system defaults to Light.
func NewManager(store Store, system func() Theme) *Manager {
	if system == nil {
		system = func() Theme { return Light }
	}
	return &Manager{
		store:   store,
		system:  system,
		current: Light,
		subs:    make(map[uuid.UUID]func(Theme)),
	}
}

// Init loads the persisted preference, or the system default when none is
// stored. A store error still leaves the manager on the system default.
func (m *Manager) Init() (Theme, error) {
	t, ok, err := m.store.Load()
	if err != nil || !ok {
		t = m.system()
	}
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
	if err != nil {
		return t, fmt.Errorf("theme: load preference: %w", err)
	}
	return t, nil
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set persists t and notifies subscribers. Subscribers are notified even
// when saving fails; the error is returned.
func (m *Manager) Set(t Theme) error {
	m.mu.Lock()
	changed := m.current != t
	m.current = t
	subs := make([]func(Theme), 0, len(m.order))
	for _, id := range m.order {
		subs = append(subs, m.subs[id])
	}
	m.mu.Unlock()

	err := m.store.Save(t)
	if changed {
		for _, fn := range subs {
			fn(t)
		}
	}
	if err != nil {
		return fmt.Errorf("theme: save preference: %w", err)
	}
	return nil
}

// Toggle switches to the opposite theme.
func (m *Manager) Toggle() (Theme, error) {
	next := m.Current().Opposite()
	return next, m.Set(next)
}

// Subscribe registers fn for theme changes.
func (m *Manager) Subscribe(fn func(Theme)) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.subs[id] = fn
	m.order = append(m.order, id)
	return id
}

// Unsubscribe removes a subscriber and reports whether it existed.
func (m *Manager) Unsubscribe(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[id]; !ok {
		return false
	}
	delete(m.subs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	theme Theme
	set   bool
}

func (s *MemoryStore) Load() (Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, s.set, nil
}

func (s *MemoryStore) Save(t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme, s.set = t, true
	return nil
}
