//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/devpradp/portfolio/internal/eventloop"
	"github.com/devpradp/portfolio/internal/slideshow"
)

// haveFutureData is HTMLMediaElement.HAVE_FUTURE_DATA, the readyState at
// which the browser fires canplay.
const haveFutureData = 3

// Video drives an HTMLVideoElement.
type Video struct {
	loop *eventloop.Loop
	el   js.Value
}

var _ slideshow.Player = (*Video)(nil)

func NewVideo(loop *eventloop.Loop, el js.Value) *Video {
	return &Video{loop: loop, el: el}
}

// Play calls play() and posts the outcome of its promise to the loop.
func (v *Video) Play(done func(error)) {
	promise := v.el.Call("play")
	if !Present(promise) || promise.Get("then").Type() != js.TypeFunction {
		v.loop.Post(func() { done(nil) })
		return
	}

	var resolve, reject js.Func
	release := func() {
		resolve.Release()
		reject.Release()
	}
	resolve = js.FuncOf(func(js.Value, []js.Value) any {
		release()
		v.loop.Post(func() { done(nil) })
		return nil
	})
	reject = js.FuncOf(func(_ js.Value, args []js.Value) any {
		release()
		reason := "unknown"
		if len(args) > 0 && Present(args[0]) {
			if name := args[0].Get("name"); name.Type() == js.TypeString {
				reason = name.String()
			}
		}
		err := fmt.Errorf("%w: %s", slideshow.ErrPlaybackRejected, reason)
		v.loop.Post(func() { done(err) })
		return nil
	})
	promise.Call("then", resolve, reject)
}

func (v *Video) Pause()       { v.el.Call("pause") }
func (v *Video) Paused() bool { return v.el.Get("paused").Bool() }
func (v *Video) Muted() bool  { return v.el.Get("muted").Bool() }
func (v *Video) Reload()      { v.el.Call("load") }
func (v *Video) Ready() bool  { return v.el.Get("readyState").Int() >= haveFutureData }

func (v *Video) SetMuted(m bool) { v.el.Set("muted", m) }

func (v *Video) Seek(pos time.Duration) { v.el.Set("currentTime", pos.Seconds()) }

func (v *Video) SetVolume(vol float64) { v.el.Set("volume", vol) }

// Subscribe listens for a media event; the callback runs on the loop.
func (v *Video) Subscribe(ev slideshow.Event, fn func()) slideshow.Subscription {
	return Listen(v.loop, v.el, string(ev), func(js.Value) { fn() })
}
