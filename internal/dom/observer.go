//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/devpradp/portfolio/internal/eventloop"
)

// IntersectionSource reports viewport intersection through the browser's
// IntersectionObserver. One observer is created per observation, matching
// the per-element threshold.
type IntersectionSource struct {
	loop *eventloop.Loop
}

func NewIntersectionSource(loop *eventloop.Loop) *IntersectionSource {
	return &IntersectionSource{loop: loop}
}

// Observe implements inview.IntersectionSource. target must be a js.Value
// element; anything else is never reported and disconnect is a no-op.
func (s *IntersectionSource) Observe(target any, threshold float64, report func(float64)) func() {
	el, ok := target.(js.Value)
	if !ok || !Present(el) {
		return func() {}
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			ratio := entries.Index(i).Get("intersectionRatio").Float()
			s.loop.Post(func() { report(ratio) })
		}
		return nil
	})
	opts := js.Global().Get("Object").New()
	opts.Set("threshold", threshold)
	observer := js.Global().Get("IntersectionObserver").New(cb, opts)
	observer.Call("observe", el)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		observer.Call("disconnect")
		cb.Release()
	}
}
