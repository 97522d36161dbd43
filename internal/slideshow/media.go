package slideshow

import (
	"errors"
	"time"
)

// Kind is the type of a slide.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// MediaItem is one slide.
type MediaItem struct {
	Kind Kind
	URL  string
	Alt  string
}

// Event names a native media notification.
type Event string

const (
	EventCanPlay Event = "canplay"
	EventPlay    Event = "play"
	EventPause   Event = "pause"
)

// ErrPlaybackRejected is reported by a Player when the platform refuses to
// start playback, typically because of an autoplay policy.
var ErrPlaybackRejected = errors.New("slideshow: playback rejected")

// Subscription is an event listener registration. Release detaches it and
// must be safe to call more than once.
type Subscription interface {
	Release()
}

// Player is a native video element under the controller's management.
type Player interface {
	// Play starts playback. done is called once, on the controller's loop,
	// with nil or the reason playback was refused.
	Play(done func(error))
	Pause()
	Paused() bool
	Seek(pos time.Duration)
	SetVolume(v float64)
	SetMuted(muted bool)
	Muted() bool
	// Reload drops buffered media so no residual playback continues.
	Reload()
	// Ready reports whether enough data is loaded to start playing.
	Ready() bool
	Subscribe(ev Event, fn func()) Subscription
}

// ensurePaused pauses p and re-issues the pause if the platform still
// reports it playing. It is idempotent.
func ensurePaused(p Player) {
	p.Pause()
	if !p.Paused() {
		p.Pause()
	}
}

// halt stops p completely: paused, rewound, muted and reloaded.
func halt(p Player) {
	ensurePaused(p)
	p.Seek(0)
	p.SetMuted(true)
	p.Reload()
}
