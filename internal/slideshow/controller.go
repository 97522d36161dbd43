// Package slideshow implements the media slideshow shown in a project's
// detail view: slide navigation, video autoplay, volume and the overlay
// controls, kept in sync with native video elements.
//
// All methods must be called from the scheduler's loop.
package slideshow

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/devpradp/portfolio/internal/eventloop"
)

const (
	// SettleDelay is the wait between a slide change and the autoplay
	// attempt. It exceeds the 300ms slide transition.
	SettleDelay = 350 * time.Millisecond

	// ResetDelay separates rewinding a video from calling play on it.
	ResetDelay = 100 * time.Millisecond

	// ControlsTimeout is how long the overlay controls stay visible after
	// the last pointer activity.
	ControlsTimeout = 3 * time.Second
)

// State is the controller's externally visible mode.
type State int

const (
	StateIdle State = iota
	StateShowingImage
	StateShowingVideoPaused
	StateShowingVideoPlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowingImage:
		return "showing-image"
	case StateShowingVideoPaused:
		return "showing-video-paused"
	case StateShowingVideoPlaying:
		return "showing-video-playing"
	default:
		return "unknown"
	}
}

// Snapshot is the state a view renders from.
type Snapshot struct {
	Index           int
	Len             int
	State           State
	Playing         bool
	Volume          float64
	ControlsVisible bool
	// ControlsHideAt is zero when no hide is pending.
	ControlsHideAt time.Time
}

type options struct {
	logger          *slog.Logger
	settle          time.Duration
	reset           time.Duration
	controlsTimeout time.Duration
}

// Option configures a Controller.
type Option func(*options)

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func WithSettleDelay(d time.Duration) Option { return func(o *options) { o.settle = d } }

func WithResetDelay(d time.Duration) Option { return func(o *options) { o.reset = d } }

func WithControlsTimeout(d time.Duration) Option {
	return func(o *options) { o.controlsTimeout = d }
}

// Controller owns the slideshow state and the managed players.
type Controller struct {
	sched  eventloop.Scheduler
	logger *slog.Logger
	opts   options

	items   []MediaItem
	players map[int]Player
	order   []int

	index   int
	playing bool
	volume  float64

	controlsVisible bool
	controlsHideAt  time.Time
	controlsTimer   eventloop.Timer

	// generation identifies the current slide activation. Delayed work
	// captured for an older generation must not act.
	generation  uint64
	// userGen is the generation in which the user last pressed play or
	// pause. Autoplay leaves that activation alone.
	userGen     uint64
	settleTimer eventloop.Timer
	playTimer   eventloop.Timer
	slideSubs   []Subscription

	listeners map[int]func(Snapshot)
	nextID    int
	closed    bool
}

// New creates a controller showing items[0]. players maps item indexes to
// the video elements rendering them; entries for image items are ignored.
func New(sched eventloop.Scheduler, items []MediaItem, players map[int]Player, opts ...Option) *Controller {
	o := options{
		logger:          slog.Default(),
		settle:          SettleDelay,
		reset:           ResetDelay,
		controlsTimeout: ControlsTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Controller{
		sched:     sched,
		logger:    o.logger,
		opts:      o,
		volume:    1,
		listeners: make(map[int]func(Snapshot)),
	}
	c.adopt(items, players)
	c.activate()
	return c
}

// SetItems replaces the media list. The index resets to 0 and the old
// players are stopped.
func (c *Controller) SetItems(items []MediaItem, players map[int]Player) {
	if c.closed {
		return
	}
	c.cancelSlide()
	for _, i := range c.order {
		halt(c.players[i])
	}
	c.adopt(items, players)
	c.index = 0
	c.activate()
	c.notify()
}

// GoToNext advances to the next slide, wrapping to the first.
func (c *Controller) GoToNext() {
	if n := len(c.items); n > 0 {
		c.goTo((c.index + 1) % n)
	}
}

// GoToPrevious moves to the previous slide, wrapping to the last.
func (c *Controller) GoToPrevious() {
	if n := len(c.items); n > 0 {
		c.goTo((c.index - 1 + n) % n)
	}
}

// GoToSlide jumps to slide i. Out-of-range indexes are ignored.
func (c *Controller) GoToSlide(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.goTo(i)
}

// HandleKey maps arrow keys to navigation and reports whether key was used.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case "ArrowLeft":
		c.GoToPrevious()
	case "ArrowRight":
		c.GoToNext()
	default:
		return false
	}
	return !c.closed
}

// TogglePlayPause plays or pauses the current video. It does nothing on
// image slides.
func (c *Controller) TogglePlayPause() {
	if c.closed {
		return
	}
	p := c.currentPlayer()
	if p == nil {
		return
	}
	c.userGen = c.generation
	if c.playTimer != nil {
		c.playTimer.Stop()
		c.playTimer = nil
	}
	if !p.Paused() {
		ensurePaused(p)
		c.setPlaying(false)
		return
	}
	c.tune(p)
	c.play(c.generation, p)
}

// SetVolume sets the current video's volume, muting it at 0. Every other
// video is forced muted. Playback state is unchanged.
func (c *Controller) SetVolume(v float64) {
	if c.closed {
		return
	}
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	c.volume = v
	c.applyVolume()
	c.notify()
}

// ToggleMute switches between silent and full volume.
func (c *Controller) ToggleMute() {
	if c.volume == 0 {
		c.SetVolume(1)
		return
	}
	c.SetVolume(0)
}

// ShowControlsTemporarily shows the overlay controls and re-arms the hide
// timer. Call it on pointer enter and pointer move.
func (c *Controller) ShowControlsTemporarily() {
	if c.closed {
		return
	}
	c.stopControlsTimer()
	c.controlsVisible = true
	c.controlsHideAt = c.sched.Now().Add(c.opts.controlsTimeout)
	c.controlsTimer = c.sched.AfterFunc(c.opts.controlsTimeout, func() {
		c.controlsTimer = nil
		if c.closed {
			return
		}
		c.controlsVisible = false
		c.controlsHideAt = time.Time{}
		c.notify()
	})
	c.notify()
}

// HideControls hides the controls immediately. Call it on pointer leave.
func (c *Controller) HideControls() {
	if c.closed {
		return
	}
	c.stopControlsTimer()
	c.controlsVisible = false
	c.controlsHideAt = time.Time{}
	c.notify()
}

// Close cancels every timer, releases event subscriptions and stops all
// players. The controller is inert afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.cancelSlide()
	c.stopControlsTimer()
	for _, i := range c.order {
		halt(c.players[i])
	}
	c.closed = true
	c.playing = false
	c.listeners = nil
}

// OnChange registers fn to receive a snapshot after every state change.
func (c *Controller) OnChange(fn func(Snapshot)) (cancel func()) {
	if c.closed {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// State returns the current mode.
func (c *Controller) State() State {
	if len(c.items) == 0 {
		return StateIdle
	}
	if c.items[c.index].Kind != KindVideo {
		return StateShowingImage
	}
	if c.playing {
		return StateShowingVideoPlaying
	}
	return StateShowingVideoPaused
}

func (c *Controller) Index() int            { return c.index }
func (c *Controller) Len() int              { return len(c.items) }
func (c *Controller) Volume() float64       { return c.volume }
func (c *Controller) Playing() bool         { return c.playing }
func (c *Controller) ControlsVisible() bool { return c.controlsVisible }

// Current returns the current item; ok is false when there are no items.
func (c *Controller) Current() (MediaItem, bool) {
	if len(c.items) == 0 {
		return MediaItem{}, false
	}
	return c.items[c.index], true
}

// Snapshot returns the state for rendering.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Index:           c.index,
		Len:             len(c.items),
		State:           c.State(),
		Playing:         c.playing,
		Volume:          c.volume,
		ControlsVisible: c.controlsVisible,
		ControlsHideAt:  c.controlsHideAt,
	}
}

// Label is the corner indicator, e.g. "VIDEO 2/3".
func (c *Controller) Label() string {
	item, ok := c.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d/%d", strings.ToUpper(string(item.Kind)), c.index+1, len(c.items))
}

func (c *Controller) adopt(items []MediaItem, players map[int]Player) {
	c.items = items
	c.players = make(map[int]Player, len(players))
	c.order = c.order[:0]
	for i, p := range players {
		if p == nil || i < 0 || i >= len(items) {
			continue
		}
		c.players[i] = p
		c.order = append(c.order, i)
	}
	sort.Ints(c.order)
}

func (c *Controller) goTo(i int) {
	if c.closed || i == c.index {
		return
	}
	c.index = i
	c.activate()
	c.notify()
}

// activate runs the side effects of an index change. Stopping every video
// happens before the settle timer is armed.
func (c *Controller) activate() {
	c.cancelSlide()
	c.generation++
	for _, i := range c.order {
		halt(c.players[i])
	}
	c.playing = false
	if len(c.items) == 0 {
		return
	}
	gen := c.generation
	c.settleTimer = c.sched.AfterFunc(c.opts.settle, func() { c.settled(gen) })
}

func (c *Controller) settled(gen uint64) {
	if !c.current(gen) {
		return
	}
	c.settleTimer = nil
	p := c.currentPlayer()
	if p == nil {
		return
	}
	c.tune(p)

	c.slideSubs = append(c.slideSubs,
		p.Subscribe(EventPlay, func() {
			if c.current(gen) {
				c.setPlaying(true)
			}
		}),
		p.Subscribe(EventPause, func() {
			if c.current(gen) {
				c.setPlaying(false)
			}
		}),
	)

	if p.Ready() {
		c.resetAndPlay(gen, p)
		return
	}
	var canPlay Subscription
	fired := false
	canPlay = p.Subscribe(EventCanPlay, func() {
		if fired {
			return
		}
		fired = true
		canPlay.Release()
		c.resetAndPlay(gen, p)
	})
	c.slideSubs = append(c.slideSubs, canPlay)
}

func (c *Controller) resetAndPlay(gen uint64, p Player) {
	if !c.current(gen) || c.userGen == gen {
		return
	}
	ensurePaused(p)
	p.Seek(0)
	if c.playTimer != nil {
		c.playTimer.Stop()
	}
	c.playTimer = c.sched.AfterFunc(c.opts.reset, func() {
		if !c.current(gen) {
			return
		}
		c.playTimer = nil
		c.play(gen, p)
	})
}

func (c *Controller) play(gen uint64, p Player) {
	p.Play(func(err error) {
		if !c.current(gen) {
			// A later slide change owns playback now. Stop this one unless
			// the newer activation has already started the same player.
			if p != c.currentPlayer() || c.settleTimer != nil || c.playTimer != nil {
				halt(p)
			}
			return
		}
		if err != nil {
			c.logger.Debug("slideshow: playback refused", "index", c.index, "error", err)
			c.setPlaying(false)
			return
		}
		c.setPlaying(true)
	})
}

// tune gives p the controller's volume, muted at 0.
func (c *Controller) tune(p Player) {
	p.SetVolume(c.volume)
	p.SetMuted(c.volume == 0)
}

func (c *Controller) applyVolume() {
	for _, i := range c.order {
		p := c.players[i]
		if i == c.index && c.items[i].Kind == KindVideo {
			c.tune(p)
			continue
		}
		p.SetMuted(true)
	}
}

func (c *Controller) current(gen uint64) bool {
	return !c.closed && gen == c.generation
}

func (c *Controller) currentPlayer() Player {
	if len(c.items) == 0 || c.items[c.index].Kind != KindVideo {
		return nil
	}
	return c.players[c.index]
}

// cancelSlide drops every pending timer and subscription of the current
// activation.
func (c *Controller) cancelSlide() {
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	if c.playTimer != nil {
		c.playTimer.Stop()
		c.playTimer = nil
	}
	for _, sub := range c.slideSubs {
		sub.Release()
	}
	c.slideSubs = nil
}

func (c *Controller) stopControlsTimer() {
	if c.controlsTimer != nil {
		c.controlsTimer.Stop()
		c.controlsTimer = nil
	}
}

func (c *Controller) setPlaying(playing bool) {
	if c.playing == playing {
		return
	}
	c.playing = playing
	c.notify()
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.Snapshot()
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			fn(snap)
		}
		if c.closed {
			return
		}
	}
}
