package widget

import (
	"time"

	"github.com/devpradp/portfolio/internal/content"
	"github.com/devpradp/portfolio/internal/eventloop"
	"github.com/devpradp/portfolio/internal/slideshow"
)

// ClearDelay is how long the closed modal keeps its project, so the exit
// animation still has content to show.
const ClearDelay = 300 * time.Millisecond

// Modal is the project detail view. It owns the slideshow for the open
// project: created on Open, torn down on Close.
type Modal struct {
	sched eventloop.Scheduler
	opts  []slideshow.Option

	project    content.Project
	selected   bool
	open       bool
	show       *slideshow.Controller
	clearTimer eventloop.Timer

	listeners []func()
}

func NewModal(sched eventloop.Scheduler, opts ...slideshow.Option) *Modal {
	return &Modal{sched: sched, opts: opts}
}

// Open shows p. players maps media indexes to the rendered video elements.
func (m *Modal) Open(p content.Project, players map[int]slideshow.Player) {
	if m.clearTimer != nil {
		m.clearTimer.Stop()
		m.clearTimer = nil
	}
	if m.show != nil {
		m.show.Close()
		m.show = nil
	}
	m.project, m.selected, m.open = p, true, true
	if len(p.Media) > 0 {
		m.show = slideshow.New(m.sched, MediaItems(p.Media), players, m.opts...)
	}
	m.notify()
}

// Close hides the modal and stops its slideshow immediately. The project
// is cleared after ClearDelay.
func (m *Modal) Close() {
	if !m.open {
		return
	}
	m.open = false
	if m.show != nil {
		m.show.Close()
		m.show = nil
	}
	m.clearTimer = m.sched.AfterFunc(ClearDelay, func() {
		m.clearTimer = nil
		m.project, m.selected = content.Project{}, false
		m.notify()
	})
	m.notify()
}

// HandleKey closes on Escape and forwards arrows to the slideshow while
// the modal is open.
func (m *Modal) HandleKey(key string) bool {
	if !m.open {
		return false
	}
	if key == "Escape" {
		m.Close()
		return true
	}
	if m.show != nil {
		return m.show.HandleKey(key)
	}
	return false
}

func (m *Modal) IsOpen() bool { return m.open }

// LocksScroll reports whether the page behind the modal must not scroll.
// The lock is lifted as soon as Close runs, before the exit animation ends.
func (m *Modal) LocksScroll() bool { return m.open }

// Selected returns the project being shown or animating out.
func (m *Modal) Selected() (content.Project, bool) { return m.project, m.selected }

// Slideshow returns the open project's slideshow, or nil.
func (m *Modal) Slideshow() *slideshow.Controller { return m.show }

// OnChange registers fn for open, close and clear transitions.
func (m *Modal) OnChange(fn func()) { m.listeners = append(m.listeners, fn) }

func (m *Modal) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}

// MediaItems converts content media records to slides.
func MediaItems(media []content.Media) []slideshow.MediaItem {
	items := make([]slideshow.MediaItem, 0, len(media))
	for _, md := range media {
		kind := slideshow.KindImage
		if md.Type == string(slideshow.KindVideo) {
			kind = slideshow.KindVideo
		}
		items = append(items, slideshow.MediaItem{Kind: kind, URL: md.URL, Alt: md.Alt})
	}
	return items
}
